package imagecodec

import (
	"strings"

	"github.com/cloudwego/base64x"
	crerr "github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// embeddableTypes are the image types the card sanitizer keeps in a data URI.
var embeddableTypes = map[string]struct{}{
	"image/gif":     {},
	"image/jpeg":    {},
	"image/png":     {},
	"image/svg+xml": {},
	"image/webp":    {},
}

var mediaTypeAliases = map[string]string{
	"image/jpg":   "image/jpeg",
	"image/pjpeg": "image/jpeg",
}

// EncodeDataURI renders image as data:{mime};base64,{payload}.
// The declared content type wins when it is embeddable; otherwise the
// payload is sniffed. Anything else is rejected so a card never loses its photo.
func EncodeDataURI(image player.Image) (string, error) {
	if image.Empty() {
		return "", crerr.Mark(crerr.New("image payload is empty"), usecase.ErrDecode)
	}

	mediaType, err := resolveMediaType(image)
	if err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("data:")
	_, _ = buf.WriteString(mediaType)
	_, _ = buf.WriteString(";base64,")

	start := len(buf.B)
	buf.B = append(buf.B, make([]byte, base64x.StdEncoding.EncodedLen(len(image.Data)))...)
	base64x.StdEncoding.Encode(buf.B[start:], image.Data)

	return buf.String(), nil
}

func resolveMediaType(image player.Image) (string, error) {
	declared := mediaTypeOf(image.ContentType)
	if embeddable(declared) {
		return declared, nil
	}

	sniffed := mediaTypeOf(mimetype.Detect(image.Data).String())
	if embeddable(sniffed) {
		return sniffed, nil
	}
	return "", crerr.Mark(
		crerr.Newf("payload is not an embeddable image: declared=%q detected=%q", declared, sniffed),
		usecase.ErrDecode,
	)
}

func embeddable(mediaType string) bool {
	_, ok := embeddableTypes[mediaType]
	return ok
}

func mediaTypeOf(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if alias, ok := mediaTypeAliases[mediaType]; ok {
		return alias
	}
	return mediaType
}
