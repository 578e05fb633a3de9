package gateway

import (
	"context"
	"errors"
	"time"

	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	PlaceholderMessage = "NIV Scholar is reflecting on this; please try again."

	// TimestampLayout matches the browser's Date.toISOString output.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	module = "CompletionGateway"
)

// Result is the outcome of one completion request.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
	Fallback  string `json:"fallbackMessage,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}

// Failed wraps err as an unsuccessful result for callers that render instead
// of propagating.
func Failed(err error, fallback string, now time.Time) *Result {
	return &Result{
		Success:   false,
		Error:     err.Error(),
		Fallback:  fallback,
		Timestamp: now.UTC().Format(TimestampLayout),
	}
}

// Completer is what sessions and services depend on.
type Completer interface {
	Ready() error
	Complete(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*Result, error)
}

// Gateway forwards composed messages to a provider and normalizes the answer.
// It makes exactly one attempt per call.
type Gateway struct {
	provider llm.LLMProvider
	logger   logger.ILogger
	tracer   trace.Tracer
	now      func() time.Time
}

var _ Completer = &Gateway{}

func New(provider llm.LLMProvider, log logger.ILogger) *Gateway {
	return &Gateway{
		provider: provider,
		logger:   log,
		tracer:   otel.Tracer("niv-scholar/gateway"),
		now:      time.Now,
	}
}

// WithClock pins the timestamp source.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

func (g *Gateway) Simulated() bool {
	s, ok := g.provider.(llm.Simulator)
	return ok && s.Simulated()
}

// Ready reports a missing credential without any network I/O.
func (g *Gateway) Ready() error {
	if c, ok := g.provider.(llm.CredentialChecker); ok {
		return c.CheckCredential()
	}
	return nil
}

func (g *Gateway) Complete(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*Result, error) {
	ctx, span := g.tracer.Start(ctx, "gateway.Complete", trace.WithAttributes(
		attribute.Int("messages", len(messages)),
		attribute.Bool("simulated", g.Simulated()),
	))
	defer span.End()

	if err := g.Ready(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		g.logger.Error(module, "completion credential missing", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	started := g.now()
	content, err := g.provider.Chat(ctx, messages, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		details := map[string]interface{}{"error": err.Error()}
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			details["status"] = upstream.Status
			details["body"] = upstream.Body
		}
		g.logger.Error(module, "completion request failed", details)
		return nil, err
	}

	if content == "" {
		g.logger.Warn(module, "completion returned no content, using placeholder", nil)
		content = PlaceholderMessage
	}

	g.logger.Info(module, "completion succeeded", map[string]interface{}{
		"messages":    len(messages),
		"duration_ms": g.now().Sub(started).Milliseconds(),
		"simulated":   g.Simulated(),
	})

	return &Result{
		Success:   true,
		Message:   content,
		Timestamp: g.now().UTC().Format(TimestampLayout),
		Simulated: g.Simulated(),
	}, nil
}
