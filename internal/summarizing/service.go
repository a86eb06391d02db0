package summarizing

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/merge"
	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
)

// MinCombinedLength is the smallest merged text, in characters, worth sending
// to a provider.
const MinCombinedLength = 100

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 120 * time.Second

// State is a step of one summarization run.
type State string

const (
	StateReceived     State = "received"
	StateValidated    State = "validated"
	StatePromptBuilt  State = "prompt_built"
	StateModelInvoked State = "model_invoked"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Request is one summarization request.
type Request struct {
	Text    string `json:"text"`
	OCRText string `json:"ocr_text"`
	Length  Length `json:"length"`
}

// Options tune the provider call.
type Options struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Service turns extracted text into a provider-generated summary.
type Service struct {
	provider providers.Provider
	opts     Options

	// OnTransition, if set, observes every state change of a run.
	OnTransition func(from, to State)
}

func NewService(provider providers.Provider, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{provider: provider, opts: opts}
}

// run tracks the state of a single request.
type run struct {
	svc   *Service
	state State
}

func (r *run) advance(to State) {
	slog.Debug("Summarization state", "from", r.state, "to", to)
	if r.svc.OnTransition != nil {
		r.svc.OnTransition(r.state, to)
	}
	r.state = to
}

func (r *run) fail(err error) error {
	r.advance(StateFailed)
	return err
}

// Summarize validates the merged text, builds the prompt and calls the
// provider exactly once. Once the provider is invoked the call is not
// cancelled by the caller going away; it ends on completion, failure or
// the configured timeout.
func (s *Service) Summarize(ctx context.Context, req Request) (string, error) {
	r := &run{svc: s, state: StateReceived}

	combined := merge.Combined(req.Text, req.OCRText)
	if utf8.RuneCountInString(combined) < MinCombinedLength {
		return "", r.fail(apperror.InsufficientInput())
	}
	r.advance(StateValidated)

	prompt := BuildPrompt(combined, req.Length)
	r.advance(StatePromptBuilt)

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.Timeout)
	defer cancel()

	r.advance(StateModelInvoked)
	start := time.Now()
	summary, err := s.provider.GenerateText(callCtx, providers.Config{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		Prompt:      prompt,
	})
	if err != nil {
		slog.Error("Summarization failed", "provider", s.provider.Name(), "elapsed", time.Since(start), "err", err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", r.fail(apperror.Timeout(s.opts.Timeout, err))
		}
		return "", r.fail(apperror.Upstream(err))
	}

	r.advance(StateCompleted)
	slog.Info("Generated summary",
		"provider", s.provider.Name(),
		"length", string(req.Length),
		"input_chars", len(combined),
		"summary_chars", len(summary),
		"elapsed", time.Since(start),
	)
	return summary, nil
}
