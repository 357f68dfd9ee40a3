package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"mailtriage/internal/classify"
	"mailtriage/internal/extract"
	"mailtriage/internal/model"
)

type fakeClassifier struct {
	category model.Category
	lastText string
}

func (f *fakeClassifier) Classify(text string) classify.Prediction {
	f.lastText = text
	return classify.Prediction{Category: f.category, Score: 1}
}

type fakeGenerator struct {
	reply        string
	lastCategory model.Category
}

func (f *fakeGenerator) Generate(_ context.Context, category model.Category, _ string) string {
	f.lastCategory = category
	return f.reply
}

type fakePublisher struct {
	events []model.TriageEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event model.TriageEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func newService(category model.Category, publisher EventPublisher) (*TriageService, *fakeClassifier, *fakeGenerator) {
	classifier := &fakeClassifier{category: category}
	generator := &fakeGenerator{reply: "resposta gerada"}
	return NewTriageService(classifier, generator, publisher, 300, 6), classifier, generator
}

func TestProcessTextInput(t *testing.T) {
	svc, classifier, generator := newService(model.CategoryProductive, nil)

	result, err := svc.Process(context.Background(), model.Input{Text: "Preciso de ajuda com o sistema"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Category != model.CategoryProductive {
		t.Fatalf("Category = %q", result.Category)
	}
	if result.Reply != "resposta gerada" {
		t.Fatalf("Reply = %q", result.Reply)
	}
	if result.Excerpt != "Preciso de ajuda com o sistema" {
		t.Fatalf("Excerpt = %q", result.Excerpt)
	}
	if classifier.lastText != "Preciso de ajuda com o sistema" {
		t.Fatalf("classifier saw %q", classifier.lastText)
	}
	if generator.lastCategory != model.CategoryProductive {
		t.Fatalf("generator saw category %q", generator.lastCategory)
	}
}

func TestProcessNoInput(t *testing.T) {
	svc, _, _ := newService(model.CategoryProductive, nil)

	_, err := svc.Process(context.Background(), model.Input{Text: "   \n "})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestProcessUnsupportedFile(t *testing.T) {
	svc, _, _ := newService(model.CategoryProductive, nil)

	in := model.Input{File: &model.FileUpload{Filename: "email.docx", Data: []byte("x")}}
	_, err := svc.Process(context.Background(), in)
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestProcessExcerptTruncatedByRunes(t *testing.T) {
	svc, _, _ := newService(model.CategoryProductive, nil)

	// 400 multi-byte runes; the excerpt must be a 300-rune prefix, never a
	// byte-level cut through a rune.
	content := strings.Repeat("ã", 400)
	result, err := svc.Process(context.Background(), model.Input{Text: content})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if utf8.RuneCountInString(result.Excerpt) != 300 {
		t.Fatalf("excerpt has %d runes", utf8.RuneCountInString(result.Excerpt))
	}
	if !strings.HasPrefix(content, result.Excerpt) {
		t.Fatal("excerpt must be a prefix of the content")
	}
	if !utf8.ValidString(result.Excerpt) {
		t.Fatal("excerpt must stay valid UTF-8")
	}
}

func TestProcessShortContentNotPadded(t *testing.T) {
	svc, _, _ := newService(model.CategoryUnproductive, nil)

	result, err := svc.Process(context.Background(), model.Input{Text: "Obrigado!"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Excerpt != "Obrigado!" {
		t.Fatalf("Excerpt = %q", result.Excerpt)
	}
}

func TestProcessPublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	svc, _, _ := newService(model.CategoryProductive, publisher)

	if _, err := svc.Process(context.Background(), model.Input{Text: "Preciso de ajuda"}); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	in := model.Input{File: &model.FileUpload{Filename: "email.txt", Data: []byte("Preciso de ajuda")}}
	if _, err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.events))
	}
	if publisher.events[0].Source != model.SourceText {
		t.Fatalf("first event source = %q", publisher.events[0].Source)
	}
	if publisher.events[1].Source != model.SourceFile {
		t.Fatalf("second event source = %q", publisher.events[1].Source)
	}
	for _, event := range publisher.events {
		if event.Category != model.CategoryProductive {
			t.Fatalf("event category = %q", event.Category)
		}
		if event.ProcessedAt.IsZero() {
			t.Fatal("event timestamp must be set")
		}
	}
}

func TestProcessToleratesPublisherFailure(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc, _, _ := newService(model.CategoryProductive, publisher)

	result, err := svc.Process(context.Background(), model.Input{Text: "Preciso de ajuda"})
	if err != nil {
		t.Fatalf("Process() must not fail on publish errors, got %v", err)
	}
	if result.Category != model.CategoryProductive {
		t.Fatalf("Category = %q", result.Category)
	}
}

func TestProcessBatchMixedResults(t *testing.T) {
	svc, _, _ := newService(model.CategoryProductive, nil)

	files := []model.FileUpload{
		{Filename: "ok.txt", Data: []byte("Preciso de ajuda com o sistema")},
		{Filename: "ruim.docx", Data: []byte("x")},
		{Filename: "vazio.txt", Data: []byte("   ")},
	}
	items, err := svc.ProcessBatch(context.Background(), files)
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	if items[0].Error != "" || items[0].Category != model.CategoryProductive {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Error == "" || items[1].Filename != "ruim.docx" {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
	if items[2].Error == "" || items[2].Filename != "vazio.txt" {
		t.Fatalf("unexpected third item: %+v", items[2])
	}
}

func TestProcessBatchLimits(t *testing.T) {
	svc, _, _ := newService(model.CategoryProductive, nil)

	if _, err := svc.ProcessBatch(context.Background(), nil); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}

	files := make([]model.FileUpload, 7)
	for i := range files {
		files[i] = model.FileUpload{Filename: "email.txt", Data: []byte("conteúdo")}
	}
	if _, err := svc.ProcessBatch(context.Background(), files); !errors.Is(err, ErrTooManyFiles) {
		t.Fatalf("expected ErrTooManyFiles, got %v", err)
	}
}
