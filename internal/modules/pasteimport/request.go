package pasteimport

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var (
	emptyObject = json.RawMessage(`{}`)
	emptyArray  = json.RawMessage(`[]`)
	emptyString = json.RawMessage(`""`)
	jsonNull    = json.RawMessage(`null`)
)

type wireRequest struct {
	Text          json.RawMessage `json:"text"`
	Facts         json.RawMessage `json:"facts"`
	TripContext   json.RawMessage `json:"tripContext"`
	Preferences   json.RawMessage `json:"preferences"`
	ExistingItems json.RawMessage `json:"existingItems"`
}

// ParseRequest decodes a request body. The body is either the envelope object or a JSON
// string holding it. An empty body, null, or any value that is not an object yields the
// defaults. Absent or null members take their default; other values are kept as sent.
func ParseRequest(body []byte) (Request, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return Request{}, err
		}
		body = bytes.TrimSpace([]byte(inner))
	}
	if isNull(body) {
		return defaultRequest(), nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Request{}, err
	}
	if _, ok := v.(map[string]any); !ok {
		return defaultRequest(), nil
	}

	var w wireRequest
	if err := json.Unmarshal(body, &w); err != nil {
		return Request{}, err
	}

	req := defaultRequest()
	if !isNull(w.Text) {
		req.Text = w.Text
	}
	if !isNull(w.Facts) {
		req.Facts = w.Facts
	}
	if !isNull(w.TripContext) {
		req.TripContext = w.TripContext
	}
	if !isNull(w.Preferences) {
		req.Preferences = w.Preferences
	}
	if !isNull(w.ExistingItems) {
		req.ExistingItems = w.ExistingItems
	}
	return req, nil
}

func defaultRequest() Request {
	return Request{
		Text:          emptyString,
		Facts:         emptyObject,
		TripContext:   emptyObject,
		Preferences:   jsonNull,
		ExistingItems: emptyArray,
	}
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, jsonNull)
}

type extractEnvelope struct {
	Text          json.RawMessage `json:"text"`
	Facts         json.RawMessage `json:"facts"`
	TripContext   json.RawMessage `json:"tripContext"`
	ExistingItems json.RawMessage `json:"existingItems"`
}

type planEnvelope struct {
	Text          json.RawMessage `json:"text"`
	Facts         json.RawMessage `json:"facts"`
	TripContext   json.RawMessage `json:"tripContext"`
	Preferences   json.RawMessage `json:"preferences"`
	ExistingItems json.RawMessage `json:"existingItems"`
}

// Envelope serializes the request as the user message sent after the instruction.
func (r Request) Envelope(includePreferences bool) ([]byte, error) {
	r = r.withDefaults()
	var (
		out []byte
		err error
	)
	if includePreferences {
		out, err = json.Marshal(planEnvelope{
			Text:          r.Text,
			Facts:         r.Facts,
			TripContext:   r.TripContext,
			Preferences:   r.Preferences,
			ExistingItems: r.ExistingItems,
		})
	} else {
		out, err = json.Marshal(extractEnvelope{
			Text:          r.Text,
			Facts:         r.Facts,
			TripContext:   r.TripContext,
			ExistingItems: r.ExistingItems,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return out, nil
}

func (r Request) withDefaults() Request {
	d := defaultRequest()
	if isNull(r.Text) {
		r.Text = d.Text
	}
	if isNull(r.Facts) {
		r.Facts = d.Facts
	}
	if isNull(r.TripContext) {
		r.TripContext = d.TripContext
	}
	if isNull(r.Preferences) {
		r.Preferences = d.Preferences
	}
	if isNull(r.ExistingItems) {
		r.ExistingItems = d.ExistingItems
	}
	return r
}
