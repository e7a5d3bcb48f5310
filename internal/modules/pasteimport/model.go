// README: Paste-import domain types (request envelope, item view, call record).
package pasteimport

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Item kinds produced by the model.
const (
	KindActivity  = "activity"
	KindReminder  = "reminder"
	KindChecklist = "checklist"
	KindFlight    = "flight"
)

// Item is a read-only view of one generated trip item.
// Responses carry the raw JSON, never a re-encoded Item.
type Item struct {
	ID                 string   `json:"id"`
	Kind               string   `json:"kind"`
	Include            *bool    `json:"include"`
	DayID              *string  `json:"dayID"`
	Title              string   `json:"title"`
	Subtitle           string   `json:"subtitle"`
	Location           string   `json:"location"`
	Notes              string   `json:"notes"`
	StartTime          *string  `json:"startTime"`
	EndTime            *string  `json:"endTime"`
	ChecklistItemsText string   `json:"checklistItemsText"`
	FlightFromCode     string   `json:"flightFromCode"`
	FlightToCode       string   `json:"flightToCode"`
	FlightNumber       string   `json:"flightNumber"`
	Confidence         *float64 `json:"confidence"`
	SourceSnippet      string   `json:"sourceSnippet"`
}

// DecodeItem reads the fields of a raw item. Unknown fields are ignored.
func DecodeItem(raw json.RawMessage) (Item, error) {
	var it Item
	err := json.Unmarshal(raw, &it)
	return it, err
}

// Request is the caller envelope. Opaque members stay raw so they reach the model unchanged.
type Request struct {
	Text          json.RawMessage
	Facts         json.RawMessage
	TripContext   json.RawMessage
	Preferences   json.RawMessage
	ExistingItems json.RawMessage
}

// Input is one inbound call as seen by the service.
type Input struct {
	Body      []byte
	UID       string
	RequestID string
}

// Result holds the items relayed to the caller.
type Result struct {
	Items []json.RawMessage
}

// Outcome labels recorded per call.
const OutcomeOK = "ok"

// Call is the metadata of one handled request. It never contains trip text or items.
type Call struct {
	RequestID string
	UID       string
	Variant   string
	Status    int
	Outcome   string
	ItemCount int
	Latency   time.Duration
	At        time.Time
}

// Recorder receives one Call per handled request.
type Recorder interface {
	Record(ctx context.Context, call Call) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, call Call) error

func (f RecorderFunc) Record(ctx context.Context, call Call) error { return f(ctx, call) }

// Recorders fans a call out to every recorder. Failures are logged and dropped.
type Recorders []Recorder

func (rs Recorders) Record(ctx context.Context, call Call) error {
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, call); err != nil {
			log.Printf("pasteimport: record call %s: %v", call.RequestID, err)
		}
	}
	return nil
}
