package classify

import "mailtriage/internal/model"

// Prediction is the outcome of classifying one text. Score is the raw linear
// decision value (positive favors the artifact's positive class); it is kept
// visible so a confidence threshold can be layered on later without changing
// the classifier itself.
type Prediction struct {
	Category model.Category
	Score    float64
}

// Classifier assigns a category to input text using a loaded artifact. It is
// a pure function of the artifact and the text: deterministic, total for any
// input (out-of-distribution text still gets a best-guess label), and safe
// for unsynchronized concurrent use because the artifact is read-only.
type Classifier struct {
	artifact *Artifact
}

func NewClassifier(artifact *Artifact) *Classifier {
	return &Classifier{artifact: artifact}
}

func (c *Classifier) Classify(text string) Prediction {
	features := c.artifact.Vectorizer.Transform(text)

	score := c.artifact.Bias
	for _, f := range features {
		score += c.artifact.Weights[f.Index] * f.Value
	}

	category := c.artifact.NegativeClass
	if score > 0 {
		category = c.artifact.PositiveClass
	}
	return Prediction{Category: category, Score: score}
}
