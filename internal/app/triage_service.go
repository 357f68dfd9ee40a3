package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mailtriage/internal/classify"
	"mailtriage/internal/extract"
	"mailtriage/internal/model"
)

var (
	ErrNoInput      = errors.New("no text or file provided")
	ErrNoFiles      = errors.New("no files provided")
	ErrTooManyFiles = errors.New("too many files")
)

// CategoryClassifier assigns a category to extracted content.
type CategoryClassifier interface {
	Classify(text string) classify.Prediction
}

// ReplyGenerator produces the auto-reply. It never fails; degraded generation
// is its own concern.
type ReplyGenerator interface {
	Generate(ctx context.Context, category model.Category, content string) string
}

// EventPublisher forwards triage events to the stats pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, event model.TriageEvent) error
}

// TriageService runs the extract → classify → generate pipeline for one
// request. It holds no per-request state; the only shared resource is the
// classifier artifact, read-only after startup.
type TriageService struct {
	classifier CategoryClassifier
	generator  ReplyGenerator
	publisher  EventPublisher
	excerptMax int
	batchMax   int
}

func NewTriageService(
	classifier CategoryClassifier,
	generator ReplyGenerator,
	publisher EventPublisher,
	excerptMax int,
	batchMax int,
) *TriageService {
	if excerptMax <= 0 {
		excerptMax = 300
	}
	if batchMax <= 0 {
		batchMax = 6
	}
	return &TriageService{
		classifier: classifier,
		generator:  generator,
		publisher:  publisher,
		excerptMax: excerptMax,
		batchMax:   batchMax,
	}
}

// Process handles a single triage request. Fails with ErrNoInput,
// extract.ErrUnsupportedFormat or extract.ErrEmptyContent; generator failures
// never surface because the generator self-recovers via fallback.
func (s *TriageService) Process(ctx context.Context, in model.Input) (*model.Result, error) {
	if !in.HasFile() && strings.TrimSpace(in.Text) == "" {
		return nil, ErrNoInput
	}

	content, err := extract.Content(in)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, extract.ErrEmptyContent
	}

	prediction := s.classifier.Classify(content)
	replyText := s.generator.Generate(ctx, prediction.Category, content)
	s.publishEvent(ctx, in, prediction.Category)

	return &model.Result{
		Category: prediction.Category,
		Reply:    replyText,
		Excerpt:  truncate(content, s.excerptMax),
	}, nil
}

// ProcessBatch runs the pipeline for every uploaded file. A failing file
// contributes an error item; it never aborts the rest of the batch.
func (s *TriageService) ProcessBatch(ctx context.Context, files []model.FileUpload) ([]model.BatchItem, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.batchMax {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyFiles, s.batchMax)
	}

	items := make([]model.BatchItem, 0, len(files))
	for i := range files {
		file := files[i]
		result, err := s.Process(ctx, model.Input{File: &file})
		if err != nil {
			items = append(items, model.BatchItem{
				Filename: file.Filename,
				Error:    batchErrorMessage(err),
			})
			continue
		}
		items = append(items, model.BatchItem{
			Filename: file.Filename,
			Category: result.Category,
			Reply:    result.Reply,
			Preview:  result.Excerpt,
		})
	}
	return items, nil
}

func (s *TriageService) publishEvent(ctx context.Context, in model.Input, category model.Category) {
	if s.publisher == nil {
		return
	}
	source := model.SourceText
	if in.HasFile() {
		source = model.SourceFile
	}
	event := model.TriageEvent{
		Category:    category,
		Source:      source,
		ProcessedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish triage event failed: %v", err)
	}
}

func batchErrorMessage(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "Formato não suportado. Envie arquivos .txt ou .pdf."
	case errors.Is(err, extract.ErrEmptyContent):
		return "O arquivo não contém texto legível."
	default:
		return "Não foi possível processar o arquivo."
	}
}

// truncate returns at most max runes of s, always a prefix, never padded.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
