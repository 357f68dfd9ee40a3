package classify

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"mailtriage/internal/model"
)

// Sample is one labeled training sentence.
type Sample struct {
	Text     string
	Category model.Category
}

// TrainOptions tunes the offline fit. Zero values fall back to defaults that
// converge on the curated corpus.
type TrainOptions struct {
	LearningRate float64
	Epochs       int
	NgramMax     int
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.LearningRate <= 0 {
		o.LearningRate = 1.0
	}
	if o.Epochs <= 0 {
		o.Epochs = 2000
	}
	if o.NgramMax <= 0 {
		o.NgramMax = 2
	}
	return o
}

// Train fits the TF-IDF vectorizer and a logistic-regression decision
// boundary on the given samples. The fit is fully deterministic: vocabulary
// order is sorted and optimization is full-batch gradient descent from zero
// weights.
func Train(samples []Sample, opts TrainOptions) (*Artifact, error) {
	opts = opts.withDefaults()

	var hasPositive, hasNegative bool
	for _, s := range samples {
		switch s.Category {
		case model.CategoryProductive:
			hasPositive = true
		case model.CategoryUnproductive:
			hasNegative = true
		default:
			return nil, fmt.Errorf("sample %q has unknown category %q", s.Text, s.Category)
		}
	}
	if !hasPositive || !hasNegative {
		return nil, errors.New("training corpus must contain both categories")
	}

	vectorizer := fitVectorizer(samples, opts.NgramMax)

	vectors := make([][]Feature, len(samples))
	targets := make([]float64, len(samples))
	for i, s := range samples {
		vectors[i] = vectorizer.Transform(s.Text)
		if s.Category == model.CategoryProductive {
			targets[i] = 1
		}
	}

	weights := make([]float64, len(vectorizer.Vocabulary))
	gradW := make([]float64, len(weights))
	var bias float64
	n := float64(len(samples))

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for i := range gradW {
			gradW[i] = 0
		}
		var gradB float64
		for i, x := range vectors {
			score := bias
			for _, f := range x {
				score += weights[f.Index] * f.Value
			}
			residual := sigmoid(score) - targets[i]
			for _, f := range x {
				gradW[f.Index] += residual * f.Value
			}
			gradB += residual
		}
		for idx, g := range gradW {
			weights[idx] -= opts.LearningRate * g / n
		}
		bias -= opts.LearningRate * gradB / n
	}

	return &Artifact{
		Vectorizer:    vectorizer,
		Weights:       weights,
		Bias:          bias,
		PositiveClass: model.CategoryProductive,
		NegativeClass: model.CategoryUnproductive,
	}, nil
}

// Evaluate returns the fraction of samples the artifact labels correctly.
func Evaluate(artifact *Artifact, samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	classifier := NewClassifier(artifact)
	var correct int
	for _, s := range samples {
		if classifier.Classify(s.Text).Category == s.Category {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

// fitVectorizer builds the vocabulary and smooth IDF weights over the corpus.
func fitVectorizer(samples []Sample, ngramMax int) Vectorizer {
	v := Vectorizer{NgramMax: ngramMax}

	docFreq := make(map[string]int)
	for _, s := range samples {
		seen := make(map[string]struct{})
		for _, term := range v.terms(s.Text) {
			seen[term] = struct{}{}
		}
		for term := range seen {
			docFreq[term]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(samples))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
