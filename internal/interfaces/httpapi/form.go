package httpapi

import "net/url"

type requestForm struct {
	values url.Values
}

func (f requestForm) ReadField(name string) string {
	return f.values.Get(name)
}

// submitEvent is a form post. Preventing its default navigation is what the
// 204 No Content answer does: the browser stays on the page.
type submitEvent struct{}

func (submitEvent) PreventDefault() {}
