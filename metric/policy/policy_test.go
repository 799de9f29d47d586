package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentionsMatchStrong(t *testing.T) {
	p := &LinkPolicy{MatchStrategy: MatchStrategyStrong}
	assert.True(t, p.MentionsMatch("Fuel Pump", "fuel  pump"))
	assert.True(t, p.MentionsMatch("o-ring", "O Ring"))
	assert.False(t, p.MentionsMatch("fuel pump", "pump"))
	assert.False(t, p.MentionsMatch("", "pump"))
}

func TestMentionsMatchWeak(t *testing.T) {
	p := &LinkPolicy{MatchStrategy: MatchStrategyWeak}
	assert.True(t, p.MentionsMatch("left fuel pump", "fuel pump"))
	assert.True(t, p.MentionsMatch("pump", "left fuel pump assembly"))
	assert.False(t, p.MentionsMatch("hydraulic seal", "fuel pump"))
}

func TestMentionsMatchDefaultsToStrong(t *testing.T) {
	p := &LinkPolicy{}
	assert.True(t, p.MentionsMatch("pump", "PUMP"))
	assert.False(t, p.MentionsMatch("left pump", "pump"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.NoError(t, (&LinkPolicy{}).Validate())
	require.Error(t, (&LinkPolicy{MatchStrategy: "fuzzy"}).Validate())
	require.Error(t, (&LinkPolicy{GoldPolicy: "any"}).Validate())
}

func TestExtended(t *testing.T) {
	assert.False(t, Default().Extended())
	assert.True(t, (&LinkPolicy{GoldPolicy: GoldPolicyExtended}).Extended())
}
