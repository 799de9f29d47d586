// Package prediction provides entity link predictions produced by NLP tools.
package prediction

import (
	"context"

	"github.com/KuangshiAi/keo/epochtime"
)

// Prediction is a single entity link predicted by a tool.
type Prediction struct {
	// DocID identifies the source document within the corpus.
	DocID string `json:"docId,omitempty"`
	// Mention is the entity surface string detected by the tool.
	Mention string `json:"mention,omitempty"`
	// QID is the predicted Wikidata identifier. Empty means the tool predicted
	// no link (NIL).
	QID string `json:"qid,omitempty"`
}

// NIL reports whether the prediction carries no knowledge-base link.
func (p *Prediction) NIL() bool {
	return p.QID == ""
}

// Set is a collection of predictions from one tool over one corpus.
type Set struct {
	// PredictionSetID uniquely identifies this prediction set.
	PredictionSetID string `json:"predictionSetId,omitempty"`
	// Tool names the NLP tool that produced the predictions.
	Tool string `json:"tool,omitempty"`
	// Predictions contains all predictions in the set.
	Predictions []*Prediction `json:"predictions,omitempty"`
	// CreationTimestamp when this set was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// ByDocument groups the predictions by document ID preserving order.
func (s *Set) ByDocument() map[string][]*Prediction {
	byDoc := make(map[string][]*Prediction)
	for _, p := range s.Predictions {
		if p == nil {
			continue
		}
		byDoc[p.DocID] = append(byDoc[p.DocID], p)
	}
	return byDoc
}

// Manager defines the interface for managing prediction sets.
type Manager interface {
	// Get gets a prediction Set identified by predictionSetID.
	Get(ctx context.Context, corpus, predictionSetID string) (*Set, error)
	// Put stores a prediction Set, overwriting any existing set with the same ID.
	Put(ctx context.Context, corpus string, set *Set) error
	// List lists all prediction set IDs for the given corpus.
	List(ctx context.Context, corpus string) ([]string, error)
	// Delete deletes the prediction Set identified by predictionSetID.
	Delete(ctx context.Context, corpus, predictionSetID string) error
	// Close closes the manager and releases owned resources.
	Close() error
}
