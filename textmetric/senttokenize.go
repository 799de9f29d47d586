package textmetric

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

var (
	// sentTokenizerOnce ensures the Punkt model is loaded once.
	sentTokenizerOnce sync.Once
	// sentTokenizer holds the initialized sentence tokenizer instance.
	sentTokenizer *sentences.DefaultSentenceTokenizer
	// sentTokenizerErr caches any initialization error.
	sentTokenizerErr error
)

// sentTokenize splits English text into sentences using Punkt training data.
func sentTokenize(text string) ([]string, error) {
	sentTokenizerOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			sentTokenizerErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			sentTokenizerErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		sentTokenizer = sentences.NewSentenceTokenizer(training)
	})
	if sentTokenizerErr != nil {
		return nil, sentTokenizerErr
	}

	raw := sentTokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		s := strings.TrimSpace(sent.Text)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
