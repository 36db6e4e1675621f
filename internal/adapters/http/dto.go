package http

import "github.com/randomtoy/roulette/internal/domain"

// CategoriesResponse is the JSON shape returned by GET /v1/categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// DrawRequest is the body of POST /v1/draw.
type DrawRequest struct {
	Category string `json:"category" form:"category" query:"category"`
}

// DrawResponse is the JSON shape returned by POST /v1/draw.
type DrawResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Messages on the spin websocket.

type clientMessage struct {
	Type     string `json:"type"`
	Category string `json:"category"`
}

type viewMessage struct {
	Type           string       `json:"type"`
	Text           string       `json:"text"`
	Style          domain.Style `json:"style"`
	Spinning       bool         `json:"spinning"`
	ButtonDisabled bool         `json:"button_disabled"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func toViewMessage(v domain.View) viewMessage {
	return viewMessage{
		Type:           "view",
		Text:           v.Text,
		Style:          v.Style,
		Spinning:       v.TimerEnabled,
		ButtonDisabled: v.ButtonDisabled,
	}
}
