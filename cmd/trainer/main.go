package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"mailtriage/internal/classify"
)

// Offline trainer: fits the TF-IDF + logistic-regression classifier on the
// embedded curated corpus and writes the serialized artifact the server
// loads at startup.
func main() {
	out := flag.String("out", "assets/model.json", "path to write the classifier artifact")
	epochs := flag.Int("epochs", 0, "gradient-descent epochs (0 = default)")
	learningRate := flag.Float64("lr", 0, "gradient-descent learning rate (0 = default)")
	flag.Parse()

	samples := classify.TrainingCorpus()
	artifact, err := classify.Train(samples, classify.TrainOptions{
		Epochs:       *epochs,
		LearningRate: *learningRate,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	accuracy := classify.Evaluate(artifact, samples)
	log.Printf("trained on %d samples, vocabulary size %d, training accuracy %.2f",
		len(samples), len(artifact.Vectorizer.Vocabulary), accuracy)

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create output directory failed: %v", err)
		}
	}
	if err := artifact.Save(*out); err != nil {
		log.Fatalf("save artifact failed: %v", err)
	}
	log.Printf("classifier artifact written to %s", *out)
}
