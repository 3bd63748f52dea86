package miro

type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ItemData struct {
	Content string `json:"content"`
	Shape   string `json:"shape,omitempty"`
}

// Style holds the free-form style attributes Miro accepts per item kind
// (fillColor, textAlign, strokeWidth, strokeStyle, ...).
type Style map[string]any

type Item struct {
	ID       string   `json:"id"`
	Type     string   `json:"type,omitempty"`
	Data     ItemData `json:"data"`
	Position Position `json:"position"`
}

// ItemPayload is a partial item update; nil fields are left untouched.
type ItemPayload struct {
	Data     *ItemData `json:"data,omitempty"`
	Position *Position `json:"position,omitempty"`
	Style    Style     `json:"style,omitempty"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}
