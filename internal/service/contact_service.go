package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/common"
	"github.com/lessensdelharmonie/harmonie/internal/api/dto/v1/contact"
	"github.com/lessensdelharmonie/harmonie/internal/api/validation"
	"github.com/lessensdelharmonie/harmonie/internal/metrics"
	"github.com/lessensdelharmonie/harmonie/internal/utils"
)

// SubmissionAcceptedMessage is returned for every accepted submission
const SubmissionAcceptedMessage = "Contact form submitted successfully"

const tracerName = "github.com/lessensdelharmonie/harmonie/internal/service"

// Logger is the subset of the application logger the service writes to
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ContactService validates contact form submissions and records the accepted ones
type ContactService struct {
	validator   *validation.Validator
	recorder    SubmissionRecorder
	logger      Logger
	phoneRegion string
	now         func() time.Time
	newID       func() string
	tracer      trace.Tracer
}

// ContactOption customizes a ContactService
type ContactOption func(*ContactService)

// WithClock overrides the clock used to timestamp submissions
func WithClock(now func() time.Time) ContactOption {
	return func(s *ContactService) {
		s.now = now
	}
}

// WithIDGenerator overrides how submission ids are generated
func WithIDGenerator(newID func() string) ContactOption {
	return func(s *ContactService) {
		s.newID = newID
	}
}

// NewContactService creates a new contact service
func NewContactService(v *validation.Validator, recorder SubmissionRecorder, logger Logger, phoneRegion string, opts ...ContactOption) *ContactService {
	s := &ContactService{
		validator:   v,
		recorder:    recorder,
		logger:      logger,
		phoneRegion: phoneRegion,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates one payload and records it when every field is valid.
// The returned result is always non-nil and safe to send to the caller. The
// error is nil on success, ErrValidation or ErrMalformedPayload for client
// mistakes, and any other error for unexpected failures.
func (s *ContactService) Submit(ctx context.Context, payload []byte, locale language.Tag) (*contact.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Submit")
	defer span.End()

	submission, result, err := s.evaluate(span, payload, locale)
	if submission == nil {
		return result, err
	}

	if err := s.recorder.Record(ctx, submission); err != nil {
		return s.fail(span, fmt.Errorf("failed to record submission: %w", err))
	}

	metrics.RecordContactSubmission(metrics.OutcomeAccepted)
	span.SetAttributes(attribute.String("contact.submission_id", submission.ID))

	return &contact.SubmissionResult{
		Success: true,
		Message: SubmissionAcceptedMessage,
	}, nil
}

// Preview returns the record a payload would produce without keeping it
func (s *ContactService) Preview(ctx context.Context, payload []byte, locale language.Tag) (*contact.Submission, *contact.SubmissionResult, error) {
	_, span := s.tracer.Start(ctx, "ContactService.Preview")
	defer span.End()

	return s.evaluate(span, payload, locale)
}

// evaluate turns a payload into a submission record, or into the failure
// result when the payload is rejected.
func (s *ContactService) evaluate(span trace.Span, payload []byte, locale language.Tag) (*contact.Submission, *contact.SubmissionResult, error) {
	req, fieldErrs, err := s.validator.ValidateSubmission(payload, locale)
	switch {
	case errors.Is(err, ErrMalformedPayload):
		metrics.RecordContactSubmission(metrics.OutcomeMalformed)
		span.SetStatus(codes.Error, "malformed payload")
		s.logger.Warn("Rejected malformed contact payload: %v", err)
		return nil, &contact.SubmissionResult{
			Success: false,
			Message: common.MessageBadRequest,
		}, err
	case err != nil:
		result, err := s.fail(span, err)
		return nil, result, err
	case len(fieldErrs) > 0:
		metrics.RecordContactSubmission(metrics.OutcomeInvalid)
		span.SetAttributes(attribute.Int("contact.violations", len(fieldErrs)))
		s.logger.Debug("Contact submission rejected: %d invalid field(s)", len(fieldErrs))
		return nil, &contact.SubmissionResult{
			Success: false,
			Message: common.MessageValidation,
			Errors:  fieldErrs,
		}, ErrValidation
	}

	span.SetAttributes(attribute.String("contact.service", req.Service))

	submission := &contact.Submission{
		ID:        s.newID(),
		Timestamp: s.now().UTC(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
	}
	if e164, ok := utils.NormalizePhone(req.Phone, s.phoneRegion); ok {
		submission.PhoneE164 = e164
	}

	return submission, nil, nil
}

func (s *ContactService) fail(span trace.Span, err error) (*contact.SubmissionResult, error) {
	metrics.RecordContactSubmission(metrics.OutcomeFailed)
	span.RecordError(err)
	span.SetStatus(codes.Error, "submission failed")
	s.logger.Error("Contact form error: %v", err)

	return &contact.SubmissionResult{
		Success: false,
		Message: common.MessageInternalServer,
	}, err
}

// Schema describes the submission form in the given locale
func (s *ContactService) Schema(locale language.Tag) contact.Schema {
	return s.validator.Schema(locale)
}
