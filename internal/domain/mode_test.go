package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeLearn, ModeBuild, ModeChallenges} {
		parsed, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMode("play")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestNavigatorTransitions(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, ModeLearn, n.Mode())

	require.NoError(t, n.Select(ModeBuild))
	assert.Equal(t, ModeBuild, n.Mode())

	n.Start("2")
	assert.Equal(t, ModeChallenges, n.Mode())
	id, ok := n.ActiveChallenge()
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	require.NoError(t, n.Select(ModeLearn))
	_, ok = n.ActiveChallenge()
	assert.True(t, ok, "switching tabs keeps the active challenge")

	n.Back()
	_, ok = n.ActiveChallenge()
	assert.False(t, ok)

	assert.ErrorIs(t, n.Select("bogus"), ErrInvalidMode)
	assert.Equal(t, ModeLearn, n.Mode())
}

func TestParseWorkspaceKind(t *testing.T) {
	ws, err := ParseWorkspaceKind("challenge")
	require.NoError(t, err)
	assert.Equal(t, WorkspaceChallenge, ws)

	_, err = ParseWorkspaceKind("learn")
	assert.ErrorIs(t, err, ErrInvalidWorkspace)
}
