package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayumi/capgen/internal/domain"
	"github.com/ayumi/capgen/internal/logger"
	"github.com/ayumi/capgen/internal/prompts"
)

// GenerationService owns the caption pipeline: prompt, model call,
// extraction, materialization, and the session the results live in.
// At most one generation runs at a time across both modes.
type GenerationService struct {
	model   ModelInvoker
	session *Session
	logger  *logger.Logger
}

// NewGenerationService creates a new generation controller.
func NewGenerationService(model ModelInvoker, session *Session, log *logger.Logger) *GenerationService {
	return &GenerationService{
		model:   model,
		session: session,
		logger:  log,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (s *GenerationService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// generationContext tags the context with a fresh generation ID and the mode
// so every downstream log line carries both.
func (s *GenerationService) generationContext(ctx context.Context, mode domain.Mode) context.Context {
	ctx = logger.SetGenerationID(ctx, uuid.NewString())
	return logger.SetMode(ctx, string(mode))
}

// GenerateFromText runs the pipeline for the text panel. The previous text
// batch is cleared as soon as the generation is accepted; a failure
// therefore leaves the panel empty rather than showing stale captions.
// Parameters:
//   - ctx: request context.
//   - text: raw user text, embedded in the prompt verbatim.
//
// Returns:
//   - []domain.Caption: the new batch, exactly one caption per variant.
//   - error: ErrEmptyInput, ErrGenerationInFlight, or a pipeline failure.
func (s *GenerationService) GenerateFromText(ctx context.Context, text string) ([]domain.Caption, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text input is empty", ErrEmptyInput)
	}

	if err := s.session.Begin(domain.ModeText); err != nil {
		return nil, err
	}
	defer s.session.End()

	ctx = s.generationContext(ctx, domain.ModeText)
	start := time.Now()

	s.log(ctx).WithField(logger.FieldSize, len(text)).Info("Starting text caption generation")

	raw, err := s.model.Invoke(ctx, prompts.ForText(text), nil)
	if err != nil {
		s.log(ctx).WithError(err).Error("Model invocation failed")
		return nil, err
	}

	return s.completeGeneration(ctx, domain.ModeText, raw, start)
}

// GenerateFromImage runs the pipeline for the image panel. Encoding happens
// after the busy flag is claimed, so a corrupt upload still occupies exactly
// one rejected generation instead of racing a concurrent one.
// Parameters:
//   - ctx: request context.
//   - data: raw uploaded image bytes.
//
// Returns:
//   - []domain.Caption: the new batch, exactly one caption per variant.
//   - error: ErrEmptyInput, ErrGenerationInFlight, or a pipeline failure.
func (s *GenerationService) GenerateFromImage(ctx context.Context, data []byte) ([]domain.Caption, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no image selected", ErrEmptyInput)
	}

	if err := s.session.Begin(domain.ModeImage); err != nil {
		return nil, err
	}
	defer s.session.End()

	ctx = s.generationContext(ctx, domain.ModeImage)
	start := time.Now()

	media, err := EncodeImage(data)
	if err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldSize, len(data)).Error("Failed to encode image")
		return nil, err
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldSize: len(data),
		"mime_type":      media.MIMEType,
	}).Info("Starting image caption generation")

	raw, err := s.model.Invoke(ctx, prompts.ForImage(), media)
	if err != nil {
		s.log(ctx).WithError(err).Error("Model invocation failed")
		return nil, err
	}

	return s.completeGeneration(ctx, domain.ModeImage, raw, start)
}

// completeGeneration finishes the shared tail of both pipelines: extract the
// payload, materialize the batch, store it, and log the outcome.
func (s *GenerationService) completeGeneration(ctx context.Context, mode domain.Mode, raw string, start time.Time) ([]domain.Caption, error) {
	rec, err := ExtractResponseRecord(raw)
	if err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldSize, len(raw)).Error("Failed to extract caption payload")
		return nil, err
	}

	captions := MaterializeCaptions(rec)
	s.session.SetBatch(mode, captions)

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldCount:      len(captions),
	}).Info(ctx, "Caption batch ready")

	return captions, nil
}

// InputChanged clears the mode's batch after a material input change
// (new image selected, text cleared). The other mode is untouched.
func (s *GenerationService) InputChanged(ctx context.Context, mode domain.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("unknown mode %q", mode)
	}

	s.session.Clear(mode)
	s.log(ctx).WithField(logger.FieldMode, string(mode)).Debug("Cleared caption batch after input change")
	return nil
}

// MarkCopied records a copy confirmation for the caption and returns the
// caption so the page can write its text to the clipboard.
// Returns ErrCaptionNotFound when the ID matches no live caption.
func (s *GenerationService) MarkCopied(ctx context.Context, id string) (domain.Caption, time.Time, error) {
	capt, expiresAt, err := s.session.MarkCopied(id)
	if err != nil {
		return domain.Caption{}, time.Time{}, err
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldCaptionID: capt.ID,
		logger.FieldVariant:   string(capt.Variant),
	}).Debug("Caption copied")

	return capt, expiresAt, nil
}

// Snapshot returns the current session view for the page.
func (s *GenerationService) Snapshot() SessionSnapshot {
	return s.session.Snapshot()
}
