package model

import "time"

// Result is the payload returned for a single processed email. Field names
// are in Portuguese because the web frontend consumes them verbatim.
type Result struct {
	Category Category `json:"categoria"`
	Reply    string   `json:"resposta"`
	Excerpt  string   `json:"texto_extraido"`
}

// BatchItem is the per-file outcome of a batch request. Either the triage
// fields or Error are set, never both.
type BatchItem struct {
	Filename string   `json:"filename"`
	Category Category `json:"categoria,omitempty"`
	Reply    string   `json:"resposta,omitempty"`
	Preview  string   `json:"preview,omitempty"`
	Error    string   `json:"erro,omitempty"`
}

// BatchResult wraps the item list for the batch endpoint.
type BatchResult struct {
	Results []BatchItem `json:"resultados"`
}

// TriageEvent is published after each completed triage so the stats worker
// can keep aggregate counters. It deliberately carries no email content.
type TriageEvent struct {
	Category    Category  `json:"categoria"`
	Source      string    `json:"origem"`
	ProcessedAt time.Time `json:"processado_em"`
}

// Event sources.
const (
	SourceText = "texto"
	SourceFile = "arquivo"
)
