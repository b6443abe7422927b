package gsi_test

import (
	"slices"
	"testing"

	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/stretchr/testify/require"
)

func TestCompareSuffix(t *testing.T) {
	keys := []string{"slot10", "beta", "slot2", "alpha", "slot0", "team1"}
	slices.SortFunc(keys, gsi.CompareSuffix)
	require.Equal(t, []string{"slot0", "team1", "slot2", "slot10", "alpha", "beta"}, keys)
}

func TestSortedKeys(t *testing.T) {
	obj := gsi.Object{"ability3": 1, "ability1": 1, "ability12": 1, "other": 1}
	require.Equal(t, []string{"ability1", "ability3", "ability12"}, gsi.SortedKeys(obj, gsi.Prefix("ability")))
	require.Equal(t, []string{"ability1", "ability3", "ability12", "other"}, gsi.SortedKeys(obj, gsi.AnyKey))
	require.Empty(t, gsi.SortedKeys(nil, gsi.AnyKey))
}

func TestIsTeamKey(t *testing.T) {
	require.True(t, gsi.IsTeamKey("team2"))
	require.True(t, gsi.IsTeamKey("team10"))
	require.False(t, gsi.IsTeamKey("team"))
	require.False(t, gsi.IsTeamKey("team_name"))
	require.False(t, gsi.IsTeamKey("xteam2"))
}
