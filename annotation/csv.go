package annotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// csvHeader is the expected header row of a gold set CSV file.
var csvHeader = []string{"doc_id", "mention", "qid", "alt_qids"}

// altQIDSeparator separates alternative QIDs within a single CSV column.
const altQIDSeparator = "|"

// ReadCSV decodes gold annotations from r. The expected header is
// doc_id,mention,qid,alt_qids where alt_qids is a |-separated list and may be
// empty. Rows with an empty doc_id or mention are rejected; all row errors are
// accumulated and returned together with the successfully parsed annotations.
func ReadCSV(r io.Reader) ([]*Annotation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := validateHeader(header, csvHeader[:3]); err != nil {
		return nil, err
	}
	var (
		annotations []*Annotation
		errs        *multierror.Error
	)
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		a, err := annotationFromRecord(record)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		annotations = append(annotations, a)
	}
	return annotations, errs.ErrorOrNil()
}

// WriteCSV encodes annotations to w using the gold set CSV layout.
func WriteCSV(w io.Writer, annotations []*Annotation) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range annotations {
		if a == nil {
			continue
		}
		record := []string{a.DocID, a.Mention, a.QID, strings.Join(a.AltQIDs, altQIDSeparator)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// annotationFromRecord parses a single CSV record into an Annotation.
func annotationFromRecord(record []string) (*Annotation, error) {
	if len(record) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(record))
	}
	docID := strings.TrimSpace(record[0])
	mention := strings.TrimSpace(record[1])
	if docID == "" {
		return nil, errors.New("doc_id is empty")
	}
	if mention == "" {
		return nil, errors.New("mention is empty")
	}
	a := &Annotation{
		DocID:   docID,
		Mention: mention,
		QID:     strings.TrimSpace(record[2]),
	}
	if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
		for _, alt := range strings.Split(record[3], altQIDSeparator) {
			alt = strings.TrimSpace(alt)
			if alt != "" {
				a.AltQIDs = append(a.AltQIDs, alt)
			}
		}
	}
	return a, nil
}

// validateHeader checks that got starts with the required column names.
func validateHeader(got, required []string) error {
	if len(got) < len(required) {
		return fmt.Errorf("csv header %v is missing required columns %v", got, required)
	}
	for i, name := range required {
		if strings.TrimSpace(strings.ToLower(got[i])) != name {
			return fmt.Errorf("csv header column %d is %q, want %q", i+1, got[i], name)
		}
	}
	return nil
}
