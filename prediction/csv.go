package prediction

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// csvHeader is the expected header row of a prediction CSV file.
var csvHeader = []string{"doc_id", "mention", "qid"}

// ReadCSV decodes tool predictions from r. The expected header is
// doc_id,mention,qid where qid may be empty for NIL predictions. Row errors
// are accumulated and returned together with the successfully parsed rows.
func ReadCSV(r io.Reader) ([]*Prediction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range csvHeader[:2] {
		if i >= len(header) || strings.TrimSpace(strings.ToLower(header[i])) != name {
			return nil, fmt.Errorf("csv header %v does not start with %v", header, csvHeader[:2])
		}
	}
	var (
		predictions []*Prediction
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
		if len(record) < 2 {
			errs = multierror.Append(errs, fmt.Errorf("row %d: expected at least 2 fields, got %d", row, len(record)))
			continue
		}
		docID := strings.TrimSpace(record[0])
		mention := strings.TrimSpace(record[1])
		if docID == "" || mention == "" {
			errs = multierror.Append(errs, fmt.Errorf("row %d: doc_id and mention must not be empty", row))
			continue
		}
		p := &Prediction{DocID: docID, Mention: mention}
		if len(record) > 2 {
			p.QID = strings.TrimSpace(record[2])
		}
		predictions = append(predictions, p)
	}
	return predictions, errs.ErrorOrNil()
}

// WriteCSV encodes predictions to w using the prediction CSV layout.
func WriteCSV(w io.Writer, predictions []*Prediction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range predictions {
		if p == nil {
			continue
		}
		if err := writer.Write([]string{p.DocID, p.Mention, p.QID}); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
