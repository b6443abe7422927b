package gsi_test

import (
	"testing"

	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	info := gsi.Match(parse(t, fullSnapshot))
	require.Equal(t, gsi.Num(-75), info.MatchTime)
	require.Equal(t, "7812345678", info.MatchID)
	require.Equal(t, "Game In Progress", info.GameStateLabel())
	require.False(t, info.IsNight())

	providerTime, ok := info.ProviderTime()
	require.True(t, ok)
	require.Equal(t, int64(1718000000), providerTime.Unix())

	fallback := gsi.Match(parse(t, `{"map": {"game_time": 42}}`))
	require.Equal(t, gsi.Num(42), fallback.MatchTime)
	_, ok = fallback.ProviderTime()
	require.False(t, ok)
}

func TestIsNight(t *testing.T) {
	cases := []struct {
		mapJSON string
		night   bool
	}{
		{`{"daytime": true, "nightstalker_night": true}`, true},
		{`{"daytime": false}`, true},
		{`{"daytime": true}`, false},
		{`{}`, false},
		{`{"daytime": "false", "clock_time": 400}`, false},
	}

	for _, testCase := range cases {
		info := gsi.Match(parse(t, `{"map": `+testCase.mapJSON+`}`))
		require.Equal(t, testCase.night, info.IsNight(), testCase.mapJSON)
	}
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "-", gsi.FormatDuration(gsi.Number{}))
	require.Equal(t, "0:00", gsi.FormatDuration(gsi.Num(0)))
	require.Equal(t, "-1:15", gsi.FormatDuration(gsi.Num(-75)))
	require.Equal(t, "12:05", gsi.FormatDuration(gsi.Num(725.9)))
	require.Equal(t, "61:01", gsi.FormatDuration(gsi.Num(3661)))
}

func TestNames(t *testing.T) {
	require.Equal(t, "Anti Mage", gsi.HeroDisplayName("npc_dota_hero_anti_mage"))
	require.Equal(t, "Axe", gsi.HeroDisplayName("axe"))
	require.Equal(t, "Black King Bar", gsi.ItemFallbackLabel("item_black_king_bar"))
	require.Equal(t, "Antimage Blink", gsi.AbilityFallbackLabel("antimage_blink"))
	require.Equal(t, "Double Underscore", gsi.ItemFallbackLabel("item_double__underscore"))
	require.Empty(t, gsi.ItemFallbackLabel(""))
	require.True(t, gsi.HiddenAbility("seasonal_summon_snowman"))
	require.True(t, gsi.HiddenAbility("plus_guild_banner"))
	require.False(t, gsi.HiddenAbility("plus_high_five_extra"))
}
