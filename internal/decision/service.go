// Package decision evaluates the banking workflows (account lookup and
// creation, transfer, withdraw, deposit) into typed outcomes that carry the
// trail of decision points that produced them.
package decision

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bankapi/internal/decision/amount"
	"bankapi/internal/decision/metrics"
	"bankapi/internal/decision/outcome"
	"bankapi/internal/decision/ports"
	"bankapi/internal/decision/validation"
	dErrors "bankapi/pkg/domain-errors"
	"bankapi/pkg/platform/audit"
	"bankapi/pkg/requestcontext"
)

const defaultMinNameLength = 3

// Service runs the workflow evaluators. It holds no per-request state, so a
// single instance serves concurrent requests.
type Service struct {
	accounts      ports.AccountPort
	transactions  ports.TransactionPort
	validator     ports.InputValidator
	amounts       *amount.Validator
	messages      *Messages
	minNameLength int
	logger        *slog.Logger
	metrics       *metrics.Metrics
	auditor       ports.AuditPort
	tracer        trace.Tracer
}

type Option func(*Service)

func WithValidator(v ports.InputValidator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

func WithAmountBounds(bounds amount.Bounds) Option {
	return func(s *Service) {
		s.amounts = amount.NewValidator(bounds)
	}
}

// WithMessages replaces the default message catalog.
func WithMessages(m Messages) Option {
	return func(s *Service) {
		s.messages = &m
	}
}

func WithMinNameLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minNameLength = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditor emits one audit event per evaluated outcome.
func WithAuditor(a ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(accounts ports.AccountPort, transactions ports.TransactionPort, opts ...Option) (*Service, error) {
	if accounts == nil {
		return nil, errors.New("account port is required")
	}
	if transactions == nil {
		return nil, errors.New("transaction port is required")
	}
	s := &Service{
		accounts:      accounts,
		transactions:  transactions,
		validator:     validation.New(),
		amounts:       amount.NewValidator(amount.DefaultBounds()),
		minNameLength: defaultMinNameLength,
		logger:        slog.New(slog.DiscardHandler),
		tracer:        otel.Tracer("bankapi/internal/decision"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.messages == nil {
		m := DefaultMessages(s.amounts.Bounds(), s.minNameLength)
		s.messages = &m
	}
	return s, nil
}

// Messages exposes the catalog so transport can use it for fallbacks.
func (s *Service) Messages() Messages {
	return *s.messages
}

func (s *Service) start(ctx context.Context, op audit.Operation) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "decision."+string(op),
		trace.WithAttributes(attribute.String("operation", string(op))))
}

// finish reports a terminal outcome to logs, metrics, the span and the
// auditor, then hands it back unchanged.
func finish[P any](ctx context.Context, s *Service, span trace.Span, op audit.Operation, started time.Time, o outcome.Outcome[P]) outcome.Outcome[P] {
	sum := o.Summary()
	trail := outcome.Strings(sum.Trail)

	s.logger.DebugContext(ctx, "outcome evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"kind", sum.Kind,
		"status", sum.Status,
		"trail", trail,
	)
	s.metrics.IncrementOutcome(sum.Kind.String(), string(op))
	s.metrics.ObserveEvaluateLatency(string(op), time.Since(started))
	span.SetAttributes(
		attribute.String("outcome.kind", sum.Kind.String()),
		attribute.Int("outcome.status", sum.Status),
		attribute.StringSlice("outcome.trail", trail),
	)

	if s.auditor != nil {
		event := audit.Event{
			Timestamp: requestcontext.Now(ctx),
			RequestID: requestcontext.RequestID(ctx),
			Operation: op,
			Kind:      sum.Kind.String(),
			Status:    sum.Status,
			Message:   sum.Message,
			Trail:     trail,
		}
		if err := s.auditor.Emit(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to emit outcome audit event",
				"operation", op,
				"error", err,
			)
		}
	}
	return o
}

// collaboratorError converts an infrastructure failure into an internal
// domain error. No outcome is produced for the request.
func (s *Service) collaboratorError(ctx context.Context, span trace.Span, op audit.Operation, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.metrics.IncrementOutcome("error", string(op))
	s.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err,
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// trim returns value without surrounding whitespace and records p when that
// changed it.
func trim[P any](b *outcome.Builder[P], value string, p outcome.Point) string {
	trimmed := strings.TrimSpace(value)
	if trimmed != value {
		b.Record(p)
	}
	return trimmed
}

// checkAmount runs the amount pipeline and records its decision points.
func checkAmount[P any](s *Service, b *outcome.Builder[P], op audit.Operation, raw float64) amount.Result {
	b.Record(PointAmountValidation)
	res := s.amounts.Validate(raw)
	if !res.Valid() {
		b.Record(amountRejectionPoint(res.Reason))
		s.metrics.IncrementAmountRejected(string(op), string(res.Reason))
		return res
	}
	if res.Sanitized {
		b.Record(PointAmountSanitized)
		s.metrics.IncrementAmountSanitized(string(op))
	}
	return res
}

func amountRejectionPoint(reason amount.Reason) outcome.Point {
	switch reason {
	case amount.ReasonBelowMinimum:
		return PointAmountTooSmall
	case amount.ReasonAboveMaximum:
		return PointAmountTooLarge
	default:
		return PointAmountInvalidFormat
	}
}
