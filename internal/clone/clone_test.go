package clone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string
	Tags []string
}

func TestClone(t *testing.T) {
	src := &payload{Name: "engine", Tags: []string{"a", "b"}}
	dst, err := Clone(src)
	require.NoError(t, err)
	require.Equal(t, src, dst)

	dst.Tags[0] = "changed"
	require.Equal(t, "a", src.Tags[0])
}

func TestCloneNil(t *testing.T) {
	_, err := Clone[payload](nil)
	require.Error(t, err)
}
