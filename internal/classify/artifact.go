package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"mailtriage/internal/model"
)

var ErrModelNotFound = errors.New("classifier model not found")

// Artifact bundles the fitted vectorizer and the fitted linear decision
// boundary. It is produced offline by the trainer, loaded once at startup,
// and never mutated afterwards.
type Artifact struct {
	Vectorizer    Vectorizer     `json:"vectorizer"`
	Weights       []float64      `json:"weights"`
	Bias          float64        `json:"bias"`
	PositiveClass model.Category `json:"positive_class"`
	NegativeClass model.Category `json:"negative_class"`
}

// Load reads a serialized artifact from disk. A missing file is reported as
// ErrModelNotFound so the caller can treat it as a startup-fatal condition.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run cmd/trainer to produce it)", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("read classifier artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode classifier artifact: %w", err)
	}
	if err := artifact.validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier artifact %s: %w", path, err)
	}
	return &artifact, nil
}

// Save writes the artifact to disk in its serialized form.
func (a *Artifact) Save(path string) error {
	if err := a.validate(); err != nil {
		return fmt.Errorf("refusing to save invalid artifact: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode classifier artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write classifier artifact: %w", err)
	}
	return nil
}

func (a *Artifact) validate() error {
	if len(a.Vectorizer.Vocabulary) == 0 {
		return errors.New("empty vocabulary")
	}
	if len(a.Weights) != len(a.Vectorizer.Vocabulary) {
		return fmt.Errorf("weights length %d does not match vocabulary size %d",
			len(a.Weights), len(a.Vectorizer.Vocabulary))
	}
	if len(a.Vectorizer.IDF) != len(a.Vectorizer.Vocabulary) {
		return fmt.Errorf("idf length %d does not match vocabulary size %d",
			len(a.Vectorizer.IDF), len(a.Vectorizer.Vocabulary))
	}
	if !a.PositiveClass.Valid() || !a.NegativeClass.Valid() {
		return errors.New("unknown class labels")
	}
	if a.PositiveClass == a.NegativeClass {
		return errors.New("class labels must differ")
	}
	return nil
}
