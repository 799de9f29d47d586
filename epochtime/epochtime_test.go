package epochtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEpochTimeRoundTrip(t *testing.T) {
	original := EpochTime{Time: time.Unix(1717171717, 500000000).UTC()}
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded EpochTime
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.WithinDuration(t, original.Time, decoded.Time, time.Millisecond)
}

func TestEpochTimeZero(t *testing.T) {
	data, err := json.Marshal(EpochTime{})
	require.NoError(t, err)
	require.Equal(t, "0", string(data))
}

func TestEpochTimeUnmarshalInvalid(t *testing.T) {
	var decoded EpochTime
	require.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &decoded))
}
