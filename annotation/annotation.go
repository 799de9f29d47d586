// Package annotation provides gold-standard entity annotations for evaluation.
package annotation

import (
	"context"

	"github.com/KuangshiAi/keo/epochtime"
)

// Annotation represents a single gold-standard entity annotation.
type Annotation struct {
	// DocID identifies the source document within the corpus.
	DocID string `json:"docId,omitempty"`
	// Mention is the entity surface string as annotated in the document.
	Mention string `json:"mention,omitempty"`
	// QID is the primary Wikidata identifier. Empty means the mention has no
	// link in the knowledge base (NIL).
	QID string `json:"qid,omitempty"`
	// AltQIDs lists acceptable alternative identifiers used by the extended
	// gold-set policy.
	AltQIDs []string `json:"altQids,omitempty"`
	// CreationTimestamp when this annotation was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// Key uniquely identifies an annotation within a gold set.
func (a *Annotation) Key() string {
	return a.DocID + "\x00" + a.Mention + "\x00" + a.QID
}

// NIL reports whether the annotation carries no knowledge-base link.
func (a *Annotation) NIL() bool {
	return a.QID == ""
}

// AcceptsQID reports whether qid is correct for this annotation. When extended
// is true the alternative identifiers also count.
func (a *Annotation) AcceptsQID(qid string, extended bool) bool {
	if a.QID == qid {
		return true
	}
	if !extended {
		return false
	}
	for _, alt := range a.AltQIDs {
		if alt == qid {
			return true
		}
	}
	return false
}

// GoldSet represents a collection of gold-standard annotations.
type GoldSet struct {
	// GoldSetID uniquely identifies this gold set.
	GoldSetID string `json:"goldSetId,omitempty"`
	// Name of the gold set.
	Name string `json:"name,omitempty"`
	// Annotations contains all annotations in the set.
	Annotations []*Annotation `json:"annotations,omitempty"`
	// CreationTimestamp when this gold set was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// ByDocument groups the annotations by document ID preserving order.
func (s *GoldSet) ByDocument() map[string][]*Annotation {
	byDoc := make(map[string][]*Annotation)
	for _, a := range s.Annotations {
		if a == nil {
			continue
		}
		byDoc[a.DocID] = append(byDoc[a.DocID], a)
	}
	return byDoc
}

// Manager defines the interface for managing gold sets.
type Manager interface {
	// Get gets a GoldSet identified by goldSetID.
	Get(ctx context.Context, corpus, goldSetID string) (*GoldSet, error)
	// Create creates an empty GoldSet.
	Create(ctx context.Context, corpus, goldSetID string) (*GoldSet, error)
	// List lists all GoldSet IDs for the given corpus.
	List(ctx context.Context, corpus string) ([]string, error)
	// Delete deletes the GoldSet identified by goldSetID.
	Delete(ctx context.Context, corpus, goldSetID string) error
	// AddAnnotation adds an annotation to an existing GoldSet.
	AddAnnotation(ctx context.Context, corpus, goldSetID string, a *Annotation) error
	// GetAnnotation gets an annotation from an existing GoldSet by its key.
	GetAnnotation(ctx context.Context, corpus, goldSetID, key string) (*Annotation, error)
	// UpdateAnnotation replaces the annotation identified by key.
	UpdateAnnotation(ctx context.Context, corpus, goldSetID, key string, a *Annotation) error
	// DeleteAnnotation deletes an annotation from an existing GoldSet.
	DeleteAnnotation(ctx context.Context, corpus, goldSetID, key string) error
	// Close closes the manager and releases owned resources.
	Close() error
}
