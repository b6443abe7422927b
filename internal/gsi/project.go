package gsi

import (
	"slices"
	"strconv"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

var hiddenAbilities = []string{"plus_high_five", "plus_guild_banner"}

const hiddenAbilityPrefix = "seasonal_"

// HiddenAbility reports whether an ability is cosmetic and never shown.
func HiddenAbility(name string) bool {
	return strings.HasPrefix(name, hiddenAbilityPrefix) || slices.Contains(hiddenAbilities, name)
}

// Project derives the ordered team views for a snapshot. It is pure: the same input
// always produces an identical result, and raw is never modified.
func Project(raw Object) []TeamView {
	teamKeys := SortedKeys(raw.Object("hero"), IsTeamKey)
	teams := make([]TeamView, 0, len(teamKeys))

	for _, teamKey := range teamKeys {
		teams = append(teams, projectTeam(raw, teamKey))
	}

	return teams
}

// TeamLabel resolves a team's display label. The first player's team_name wins, then the
// top level player.team_name, then the raw team key. Resolved names are upper cased.
func TeamLabel(raw Object, teamKey string) string {
	playerRoot := raw.Object("player")

	if teamRoot := playerRoot.Object(teamKey); teamRoot != nil {
		if keys := SortedKeys(teamRoot, AnyKey); len(keys) > 0 {
			if name := teamRoot.Object(keys[0]).String("team_name"); name != "" {
				return strings.ToUpper(name)
			}
		}
	}

	if name := playerRoot.String("team_name"); name != "" {
		return strings.ToUpper(name)
	}

	return teamKey
}

func projectTeam(raw Object, teamKey string) TeamView {
	var (
		heroTeam      = raw.Path("hero", teamKey)
		itemsTeam     = raw.Path("items", teamKey)
		abilitiesTeam = raw.Path("abilities", teamKey)
		neutralsTeam  = raw.Path("neutralitems", teamKey)
		statsTeam     = raw.Path("player", teamKey)
		players       []PlayerView
	)

	for _, playerKey := range SortedKeys(heroTeam, AnyKey) {
		hero := heroTeam.Object(playerKey)
		heroName := hero.String("name")
		if heroName == "" {
			continue
		}

		itemsPlayer := itemsTeam.Object(playerKey)

		player := PlayerView{
			PlayerKey:       playerKey,
			HeroName:        heroName,
			Level:           hero.Number("level"),
			HP:              hero.Number("health"),
			HPMax:           hero.Number("max_health"),
			Mana:            hero.Number("mana"),
			ManaMax:         hero.Number("max_mana"),
			Alive:           hero.Flag("alive"),
			RespawnSeconds:  hero.Number("respawn_seconds"),
			Items:           inventory(itemsPlayer),
			Teleports:       teleports(itemsPlayer),
			Neutrals:        specialItems(itemsPlayer, "neutral"),
			NeutralCrafting: neutralCrafting(neutralsTeam.Object(playerKey)),
			Abilities:       abilities(abilitiesTeam.Object(playerKey)),
		}

		applyStats(&player, statsTeam.Object(playerKey))

		players = append(players, player)
	}

	return TeamView{
		TeamKey:   teamKey,
		TeamLabel: TeamLabel(raw, teamKey),
		Players:   players,
	}
}

func applyStats(player *PlayerView, stats Object) {
	if stats == nil {
		return
	}

	player.Name = stats.String("name")
	if sid := steamid.New(stats.String("steamid")); sid.Valid() {
		player.SteamID = sid
	}
	player.Kills = stats.Number("kills")
	player.Deaths = stats.Number("deaths")
	player.Assists = stats.Number("assists")
	player.LastHits = stats.Number("last_hits")
	player.Denies = stats.Number("denies")
	player.Gold = stats.Number("gold")
	player.NetWorth = stats.Number("net_worth")
	player.GPM = stats.Number("gpm")
	player.XPM = stats.Number("xpm")
}

func itemSlot(key string, slot Object) ItemSlot {
	if slot == nil {
		return ItemSlot{Key: key}
	}

	return ItemSlot{
		Key:         key,
		Name:        slot.String("name"),
		Cooldown:    slot.Number("cooldown"),
		MaxCooldown: slot.Number("max_cooldown"),
		Charges:     slot.FirstNumber("item_charges", "charges"),
		Received:    true,
	}
}

func inventory(itemsPlayer Object) [InventorySlots]ItemSlot {
	var slots [InventorySlots]ItemSlot
	for idx := range slots {
		key := "slot" + strconv.Itoa(idx)
		slots[idx] = itemSlot(key, itemsPlayer.Object(key))
	}

	return slots
}

func specialItems(itemsPlayer Object, prefix string) []SpecialItem {
	keys := SortedKeys(itemsPlayer, Prefix(prefix))
	if len(keys) > MaxSpecialItems {
		keys = keys[:MaxSpecialItems]
	}

	items := make([]SpecialItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, itemSlot(key, itemsPlayer.Object(key)))
	}

	return items
}

// teleports applies the display rule: only teleport0 and only when occupied.
func teleports(itemsPlayer Object) []SpecialItem {
	candidates := specialItems(itemsPlayer, "teleport")
	if len(candidates) == 0 {
		return nil
	}

	first := candidates[0]
	if first.Key != "teleport0" || !first.Occupied() {
		return nil
	}

	return []SpecialItem{first}
}

func abilities(abilitiesPlayer Object) []Ability {
	var out []Ability

	for _, key := range SortedKeys(abilitiesPlayer, Prefix("ability")) {
		ability := abilitiesPlayer.Object(key)
		name := ability.String("name")
		if name == "" || HiddenAbility(name) {
			continue
		}

		out = append(out, Ability{
			Key:         key,
			Name:        name,
			Level:       ability.Number("level"),
			Cooldown:    ability.Number("cooldown"),
			MaxCooldown: ability.Number("max_cooldown"),
			Charges:     ability.FirstNumber("ability_charges", "charges"),
			Passive:     ability.Flag("passive"),
			Ultimate:    ability.Flag("ultimate"),
		})
	}

	return out
}

type selectedChoice struct {
	name        string
	cooldown    Number
	maxCooldown Number
	charges     Number
}

func pickSelected(choices Object) (selectedChoice, bool) {
	for _, key := range SortedKeys(choices, Prefix("choice")) {
		choice := choices.Object(key)
		if !choice.Flag("selected").True() {
			continue
		}

		name := choice.String("item_name")
		if name == "" {
			continue
		}

		return selectedChoice{
			name:        name,
			cooldown:    choice.Number("cooldown"),
			maxCooldown: choice.Number("max_cooldown"),
			charges:     choice.FirstNumber("item_charges", "charges"),
		}, true
	}

	return selectedChoice{}, false
}

// neutralCrafting scans tiers from the highest suffix down and returns the first tier with
// both an enchantment and a trinket selected.
func neutralCrafting(neutralsPlayer Object) *NeutralCraftingSelection {
	tierKeys := SortedKeys(neutralsPlayer, tierKeyRx.MatchString)
	slices.Reverse(tierKeys)

	for _, tierKey := range tierKeys {
		tier := neutralsPlayer.Object(tierKey)
		if tier == nil {
			continue
		}

		enchantment, enchantmentOk := pickSelected(tier.Object("enchantment_choices"))
		trinket, trinketOk := pickSelected(tier.Object("trinket_choices"))
		if !enchantmentOk || !trinketOk {
			continue
		}

		return &NeutralCraftingSelection{
			TierKey: tierKey,
			Enchantment: Enchantment{
				Name:    enchantment.name,
				Charges: enchantment.charges,
			},
			Trinket: Trinket{
				Key:         tierKey + ".trinket",
				Name:        trinket.name,
				Cooldown:    trinket.cooldown,
				MaxCooldown: trinket.maxCooldown,
				Charges:     trinket.charges,
			},
		}
	}

	return nil
}
