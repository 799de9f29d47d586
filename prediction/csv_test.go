package prediction

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"doc_id,mention,qid",
		"doc-1,hydraulic pump,Q1327500",
		"doc-1,nil mention,",
	}, "\n")
	predictions, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, "Q1327500", predictions[0].QID)
	assert.True(t, predictions[1].NIL())
}

func TestReadCSVRowErrors(t *testing.T) {
	input := strings.Join([]string{
		"doc_id,mention,qid",
		",missing,Q1",
		"doc-1,ok,Q2",
	}, "\n")
	predictions, err := ReadCSV(strings.NewReader(input))
	require.Error(t, err)
	require.Len(t, predictions, 1)
}

func TestReadCSVBadHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b,c\n1,2,3"))
	require.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	predictions := []*Prediction{
		{DocID: "doc-1", Mention: "fuel pump", QID: "Q1"},
		{DocID: "doc-2", Mention: "seal"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, predictions))
	decoded, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, predictions[0].QID, decoded[0].QID)
}

func TestByDocument(t *testing.T) {
	set := &Set{Predictions: []*Prediction{
		{DocID: "a", Mention: "m1"},
		{DocID: "a", Mention: "m2"},
		{DocID: "b", Mention: "m3"},
	}}
	byDoc := set.ByDocument()
	require.Len(t, byDoc, 2)
	assert.Len(t, byDoc["a"], 2)
}
