package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppFlagAliasesCorpus(t *testing.T) {
	flagCorpus = ""
	cmd := newRootCommand()

	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--app", "ntsb"}))
	assert.Equal(t, "ntsb", flagCorpus)

	// Both spellings resolve to the same flag, so the later value wins.
	flagCorpus = ""
	cmd = newRootCommand()
	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--corpus", "ntsb", "--app", "asrs"}))
	assert.Equal(t, "asrs", flagCorpus)
	assert.Equal(t, "asrs", cmd.PersistentFlags().Lookup("corpus").Value.String())
}
