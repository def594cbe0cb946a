package querybuilder

import (
	"fmt"
	"strings"
)

// URLBuilder assembles request URLs for path-addressed APIs.
// Segments are appended verbatim; callers that need escaping must do it first.
type URLBuilder struct {
	base     string
	path     string
	segments []string
}

func URL(base string) *URLBuilder {
	return &URLBuilder{base: strings.TrimRight(strings.TrimSpace(base), "/")}
}

// Path sets the endpoint path, e.g. "/players-stats".
func (b *URLBuilder) Path(path string) *URLBuilder {
	path = strings.TrimSpace(path)
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	b.path = strings.TrimRight(path, "/")
	return b
}

func (b *URLBuilder) Segment(parts ...string) *URLBuilder {
	b.segments = append(b.segments, parts...)
	return b
}

func (b *URLBuilder) ToURL() (string, error) {
	if b.base == "" {
		return "", fmt.Errorf("url base is required")
	}

	var buf strings.Builder
	buf.WriteString(b.base)
	buf.WriteString(b.path)
	for _, segment := range b.segments {
		buf.WriteByte('/')
		buf.WriteString(segment)
	}

	return buf.String(), nil
}

// PlayerURL builds {base}{endpoint}/{lastName}/{firstName}.
// The remote API addresses players last name first.
func PlayerURL(base, endpoint, firstName, lastName string) (string, error) {
	return URL(base).Path(endpoint).Segment(lastName, firstName).ToURL()
}
