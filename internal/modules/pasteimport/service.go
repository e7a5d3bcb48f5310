// README: Paste-import pipeline (envelope build, model call, payload validation).
package pasteimport

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/ai"
)

const recordTimeout = 5 * time.Second

// Service runs one import variant against a model provider.
type Service struct {
	provider  ai.Provider
	apiKey    string
	variant   Variant
	recorders Recorders
	now       func() time.Time
}

// NewService creates a Service. apiKey may be empty; every call then fails with
// ErrMissingCredential before any network access.
func NewService(provider ai.Provider, apiKey string, variant Variant, recorders ...Recorder) *Service {
	return &Service{
		provider:  provider,
		apiKey:    strings.TrimSpace(apiKey),
		variant:   variant,
		recorders: Recorders(recorders),
		now:       time.Now,
	}
}

// Import handles one call. Failures are returned as *Error.
// The model call is detached from ctx cancellation so a caller disconnect does not abort
// work already issued; the provider client's timeout bounds it instead.
func (s *Service) Import(ctx context.Context, in Input) (*Result, error) {
	start := s.now()
	res, ierr := s.run(ctx, in)

	call := Call{
		RequestID: in.RequestID,
		UID:       in.UID,
		Variant:   s.variant.Name,
		Status:    http.StatusOK,
		Outcome:   OutcomeOK,
		Latency:   s.now().Sub(start),
		At:        start,
	}
	if ierr != nil {
		call.Status = ierr.Status
		call.Outcome = string(ierr.Kind)
	} else {
		call.ItemCount = len(res.Items)
	}
	s.record(ctx, call)

	if ierr != nil {
		return nil, ierr
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, in Input) (*Result, *Error) {
	if s.apiKey == "" {
		return nil, internalError(KindMissingCredential, ErrMissingCredential)
	}

	req, err := ParseRequest(in.Body)
	if err != nil {
		return nil, internalError(KindUnexpected, err)
	}
	envelope, err := req.Envelope(s.variant.IncludePreferences)
	if err != nil {
		return nil, internalError(KindUnexpected, err)
	}

	text, err := s.provider.GenerateContent(context.WithoutCancel(ctx), s.apiKey, ai.GenerateRequest{
		Model:            s.variant.Model,
		Parts:            []string{s.variant.Instruction, string(envelope)},
		Temperature:      s.variant.Temperature,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		log.Printf("pasteimport %s: provider error (request %s): %v", s.variant.Name, in.RequestID, err)
		return nil, s.providerError(err)
	}

	items, ierr := extractItems(text)
	if ierr != nil {
		log.Printf("pasteimport %s: bad payload (request %s): %v", s.variant.Name, in.RequestID, ierr)
		return nil, ierr
	}

	if s.variant.RejectDuplicateLocations {
		if ierr := checkDuplicateLocations(items, req.ExistingItems); ierr != nil {
			log.Printf("pasteimport %s: %v (request %s)", s.variant.Name, ierr, in.RequestID)
			return nil, ierr
		}
	}

	return &Result{Items: items}, nil
}

func (s *Service) providerError(err error) *Error {
	var perr *ai.ProviderError
	switch {
	case errors.As(err, &perr):
		status := http.StatusInternalServerError
		if s.variant.RelayProviderStatus && perr.StatusCode >= 400 && perr.StatusCode <= 599 {
			status = perr.StatusCode
		}
		msg := perr.Body
		if msg == "" {
			msg = providerFailedMessage
		}
		return &Error{Kind: KindProviderFailure, Status: status, Message: msg, Err: err}
	case errors.Is(err, ai.ErrMalformedEnvelope):
		return internalError(KindMalformedPayload, err)
	default:
		return internalError(KindProviderFailure, err)
	}
}

func (s *Service) record(ctx context.Context, call Call) {
	if len(s.recorders) == 0 {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	_ = s.recorders.Record(rctx, call)
}
