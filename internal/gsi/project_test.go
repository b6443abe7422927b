package gsi_test

import (
	"math"
	"testing"

	"github.com/leighmacdonald/dota-tui/internal/encoding"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/stretchr/testify/require"
)

const fullSnapshot = `{
  "provider": {"name": "Dota 2", "appid": 570, "timestamp": 1718000000},
  "map": {"matchid": "7812345678", "clock_time": -75, "game_time": 10, "daytime": true, "nightstalker_night": false,
          "game_state": "DOTA_GAMERULES_STATE_GAME_IN_PROGRESS", "paused": false},
  "player": {
    "team2": {
      "player0": {"steamid": "76561197960287930", "name": "radiant_one", "team_name": "radiant", "kills": 3, "deaths": 1, "assists": 7,
                  "last_hits": 120, "denies": 8, "gold": 1500, "net_worth": 9800, "gpm": 512, "xpm": 601},
      "player1": {"name": "radiant_two", "team_name": "ignored"}
    },
    "team3": {
      "player5": {"name": "dire_one"}
    },
    "team_name": "fallback"
  },
  "hero": {
    "team2": {
      "player1": {"name": "npc_dota_hero_crystal_maiden", "level": 12},
      "player0": {"name": "npc_dota_hero_anti_mage", "level": 14, "health": 900, "max_health": 1200, "mana": 200, "max_mana": 400,
                  "alive": true, "respawn_seconds": 0},
      "player2": {"level": 3}
    },
    "team3": {
      "player5": {"name": "npc_dota_hero_axe", "alive": false, "respawn_seconds": 23}
    }
  },
  "abilities": {
    "team2": {
      "player0": {
        "ability10": {"name": "antimage_mana_void", "cooldown": 50, "max_cooldown": 70, "ultimate": true, "level": 2},
        "ability0": {"name": "antimage_mana_break", "passive": true, "cooldown": 0},
        "ability1": {"name": "antimage_blink", "cooldown": 4, "max_cooldown": 11, "passive": false},
        "ability2": {"name": "plus_high_five"},
        "ability3": {"name": "seasonal_ti11_balloon"},
        "ability4": {"name": "plus_guild_banner"},
        "ability5": {"cooldown": 3}
      }
    }
  },
  "items": {
    "team2": {
      "player0": {
        "slot0": {"name": "item_power_treads"},
        "slot1": {"name": "item_magic_wand", "item_charges": 12, "charges": 4},
        "slot2": {"name": "item_bottle", "charges": 2},
        "slot3": {"name": "item_manta", "cooldown": 20, "max_cooldown": 45},
        "slot4": {"name": "empty"},
        "teleport0": {"name": "item_tpscroll", "cooldown": 60, "max_cooldown": 80, "charges": 1},
        "teleport1": {"name": "item_tpscroll"},
        "neutral1": {"name": "item_mysterious_hat"},
        "neutral0": {"name": "item_trusty_shovel"},
        "neutral2": {"name": "empty"},
        "neutral3": {"name": "item_overflow"}
      }
    },
    "team3": {
      "player5": {"teleport0": {"name": "empty"}}
    }
  },
  "neutralitems": {
    "team2": {
      "player0": {
        "tier0": {
          "enchantment_choices": {"choice0": {"item_name": "enchant_a", "selected": true}},
          "trinket_choices": {"choice0": {"item_name": "trinket_a", "selected": true}}
        },
        "tier1": {
          "enchantment_choices": {"choice0": {"item_name": "enchant_b", "selected": false}, "choice1": {"item_name": "enchant_c", "selected": true}},
          "trinket_choices": {"choice0": {"item_name": "trinket_b", "selected": true, "cooldown": 7, "max_cooldown": 25}}
        },
        "tier2": {
          "enchantment_choices": {"choice0": {"item_name": "enchant_d", "selected": true}},
          "trinket_choices": {"choice0": {"item_name": "trinket_d", "selected": "true"}}
        }
      }
    }
  }
}`

func parse(t *testing.T, body string) gsi.Object {
	t.Helper()

	raw, err := gsi.ParseSnapshot([]byte(body))
	require.NoError(t, err)

	return raw
}

func TestProjectDeterministic(t *testing.T) {
	raw := parse(t, fullSnapshot)
	before, err := encoding.Canonical(raw)
	require.NoError(t, err)

	first := gsi.Project(raw)
	second := gsi.Project(raw)
	require.Equal(t, first, second)

	after, err := encoding.Canonical(raw)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestProjectTeams(t *testing.T) {
	teams := gsi.Project(parse(t, fullSnapshot))
	require.Len(t, teams, 2)

	radiant := teams[0]
	require.Equal(t, "team2", radiant.TeamKey)
	require.Equal(t, "RADIANT", radiant.TeamLabel)
	// player2 has no hero name and is dropped.
	require.Len(t, radiant.Players, 2)
	require.Equal(t, "player0", radiant.Players[0].PlayerKey)
	require.Equal(t, "player1", radiant.Players[1].PlayerKey)

	dire := teams[1]
	require.Equal(t, "team3", dire.TeamKey)
	require.Equal(t, "FALLBACK", dire.TeamLabel)
	require.True(t, dire.Players[0].Dead())
	require.InDelta(t, 23.0, dire.Players[0].RespawnSeconds.Value, 0.001)
	require.Empty(t, dire.Players[0].Teleports)
}

func TestProjectPlayer(t *testing.T) {
	player := gsi.Project(parse(t, fullSnapshot))[0].Players[0]

	require.Equal(t, "npc_dota_hero_anti_mage", player.HeroName)
	require.Equal(t, gsi.Num(14), player.Level)
	require.Equal(t, gsi.Num(900), player.HP)
	require.Equal(t, gsi.Num(1200), player.HPMax)
	require.Equal(t, gsi.Num(200), player.Mana)
	require.Equal(t, gsi.Num(400), player.ManaMax)
	require.True(t, player.Alive.True())
	require.False(t, player.Dead())

	require.Equal(t, "radiant_one", player.Name)
	require.True(t, player.SteamID.Valid())
	require.Equal(t, gsi.Num(3), player.Kills)
	require.Equal(t, gsi.Num(9800), player.NetWorth)
	require.Equal(t, gsi.Num(601), player.XPM)

	require.Len(t, player.Items, gsi.InventorySlots)
	require.Equal(t, "item_power_treads", player.Items[0].Name)
	require.Equal(t, gsi.Num(12), player.Items[1].Charges, "item_charges wins over charges")
	require.Equal(t, gsi.Num(2), player.Items[2].Charges)
	require.Equal(t, gsi.Num(20), player.Items[3].Cooldown)
	require.Equal(t, gsi.Num(45), player.Items[3].MaxCooldown)
	require.True(t, player.Items[4].Received)
	require.False(t, player.Items[4].Occupied())
	require.False(t, player.Items[8].Received)
	require.Equal(t, "slot8", player.Items[8].Key)

	require.Len(t, player.Neutrals, 3)
	require.Equal(t, []string{"neutral0", "neutral1", "neutral2"},
		[]string{player.Neutrals[0].Key, player.Neutrals[1].Key, player.Neutrals[2].Key})

	require.Len(t, player.Teleports, 1)
	require.Equal(t, "teleport0", player.Teleports[0].Key)
	require.Equal(t, gsi.Num(60), player.Teleports[0].Cooldown)
}

func TestProjectAbilities(t *testing.T) {
	abilities := gsi.Project(parse(t, fullSnapshot))[0].Players[0].Abilities

	names := make([]string, len(abilities))
	for idx, ability := range abilities {
		names[idx] = ability.Name
	}

	require.Equal(t, []string{"antimage_mana_break", "antimage_blink", "antimage_mana_void"}, names)
	require.True(t, abilities[0].Passive.True())
	require.True(t, abilities[1].Passive.False())
	require.False(t, abilities[2].Passive.Valid)
	require.True(t, abilities[2].Ultimate.True())
	require.Equal(t, gsi.Num(70), abilities[2].MaxCooldown)
}

func TestProjectMissingAbilities(t *testing.T) {
	raw := parse(t, `{"hero": {"team2": {"player0": {"name": "npc_dota_hero_axe", "level": 1}}}}`)
	teams := gsi.Project(raw)
	require.Len(t, teams, 1)
	player := teams[0].Players[0]
	require.Empty(t, player.Abilities)
	require.Empty(t, player.Teleports)
	require.Empty(t, player.Neutrals)
	require.Nil(t, player.NeutralCrafting)
	require.Equal(t, gsi.Num(1), player.Level)
	require.Equal(t, "team2", teams[0].TeamLabel)
}

func TestProjectTeamOrder(t *testing.T) {
	raw := parse(t, `{"hero": {
		"team10": {"player0": {"name": "npc_dota_hero_lina"}},
		"team2": {"player0": {"name": "npc_dota_hero_lion"}},
		"team1": {"player0": {"name": "npc_dota_hero_zuus"}},
		"teamx": {"player0": {"name": "npc_dota_hero_tiny"}},
		"spectators": {}
	}}`)

	teams := gsi.Project(raw)
	keys := make([]string, len(teams))
	for idx, team := range teams {
		keys[idx] = team.TeamKey
	}

	require.Equal(t, []string{"team1", "team2", "team10"}, keys)
}

func TestNeutralCraftingHighestTier(t *testing.T) {
	crafting := gsi.Project(parse(t, fullSnapshot))[0].Players[0].NeutralCrafting
	require.NotNil(t, crafting)
	// tier2 trinket selection is a string, not a boolean, so tier1 wins.
	require.Equal(t, "tier1", crafting.TierKey)
	require.Equal(t, "enchant_c", crafting.Enchantment.Name)
	require.Equal(t, "trinket_b", crafting.Trinket.Name)
	require.Equal(t, "tier1.trinket", crafting.Trinket.Key)
	require.Equal(t, gsi.Num(7), crafting.Trinket.Cooldown)
	require.Equal(t, gsi.Num(25), crafting.Trinket.MaxCooldown)
}

func TestNeutralCraftingPrefersHigherTier(t *testing.T) {
	raw := parse(t, `{
	  "hero": {"team2": {"player0": {"name": "npc_dota_hero_axe"}}},
	  "neutralitems": {"team2": {"player0": {
	    "tier1": {"enchantment_choices": {"choice0": {"item_name": "e1", "selected": true}},
	              "trinket_choices": {"choice0": {"item_name": "t1", "selected": true}}},
	    "tier2": {"enchantment_choices": {"choice0": {"item_name": "e2", "selected": true}},
	              "trinket_choices": {"choice0": {"item_name": "t2", "selected": true}}},
	    "tier3": {"enchantment_choices": {"choice0": {"item_name": "e3", "selected": true}}}
	  }}}
	}`)

	crafting := gsi.Project(raw)[0].Players[0].NeutralCrafting
	require.NotNil(t, crafting)
	require.Equal(t, "tier2", crafting.TierKey)
	require.Equal(t, "t2", crafting.Trinket.Name)
}

func TestTeleportDisplayRule(t *testing.T) {
	cases := []struct {
		name  string
		items string
		want  int
	}{
		{name: "occupied", items: `{"teleport0": {"name": "item_tpscroll"}}`, want: 1},
		{name: "empty", items: `{"teleport0": {"name": "empty"}}`, want: 0},
		{name: "missing name", items: `{"teleport0": {"cooldown": 4}}`, want: 0},
		{name: "only later slots", items: `{"teleport1": {"name": "item_tpscroll"}, "teleport2": {"name": "item_tpscroll"}}`, want: 0},
		{name: "absent", items: `{}`, want: 0},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			raw := parse(t, `{"hero": {"team2": {"player0": {"name": "npc_dota_hero_axe"}}},
				"items": {"team2": {"player0": `+testCase.items+`}}}`)
			require.Len(t, gsi.Project(raw)[0].Players[0].Teleports, testCase.want)
		})
	}
}

func TestTeamLabelFallback(t *testing.T) {
	require.Equal(t, "TEAM LIQUID", gsi.TeamLabel(parse(t,
		`{"player": {"team2": {"player1": {"team_name": "other"}, "player0": {"team_name": "Team Liquid"}}}}`), "team2"))
	require.Equal(t, "ROOT", gsi.TeamLabel(parse(t,
		`{"player": {"team2": {"player0": {}}, "team_name": "root"}}`), "team2"))
	require.Equal(t, "team2", gsi.TeamLabel(parse(t, `{"player": {"team2": "bogus"}}`), "team2"))
	require.Equal(t, "team2", gsi.TeamLabel(nil, "team2"))
}

func TestProjectTotal(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"hero": null}`,
		`{"hero": []}`,
		`{"hero": {"team2": null}}`,
		`{"hero": {"team2": {"player0": "axe"}}}`,
		`{"hero": {"team2": {"player0": {"name": 12}}}}`,
		`{"hero": {"team2": {"player0": {"name": "npc_dota_hero_axe"}}}, "items": {"team2": {"player0": {"slot0": 5}}}}`,
		`{"hero": {"team2": {"player0": {"name": "npc_dota_hero_axe"}}}, "neutralitems": {"team2": {"player0": {"tier0": []}}}}`,
	}

	for _, input := range inputs {
		require.NotPanics(t, func() {
			gsi.Project(parse(t, input))
			gsi.Match(parse(t, input))
		}, input)
	}

	require.NotPanics(t, func() { gsi.Project(nil) })
}

func TestNumberStrictness(t *testing.T) {
	obj := gsi.Object{
		"string": "10",
		"nan":    math.NaN(),
		"inf":    math.Inf(1),
		"int":    7,
		"float":  1.5,
		"bool":   "true",
		"real":   false,
	}

	require.False(t, obj.Number("string").Valid)
	require.False(t, obj.Number("nan").Valid)
	require.False(t, obj.Number("inf").Valid)
	require.Equal(t, gsi.Num(7), obj.Number("int"))
	require.Equal(t, gsi.Num(1.5), obj.Number("float"))
	require.False(t, obj.Flag("bool").Valid)
	require.True(t, obj.Flag("real").False())
	require.InDelta(t, 3.0, obj.Number("missing").Or(3), 0.001)
}

func TestParseSnapshot(t *testing.T) {
	_, errArray := gsi.ParseSnapshot([]byte(`[1, 2]`))
	require.ErrorIs(t, errArray, gsi.ErrNotObject)

	_, errNull := gsi.ParseSnapshot([]byte(`null`))
	require.ErrorIs(t, errNull, gsi.ErrNotObject)

	_, errGarbage := gsi.ParseSnapshot([]byte(`{not json`))
	require.Error(t, errGarbage)
}
