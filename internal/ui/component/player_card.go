package component

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/assets"
	"github.com/leighmacdonald/dota-tui/internal/cooldown"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

const (
	abilityCellWidth = 4
	itemCellWidth    = 8
	itemsPerRow      = 3
	// Slots from here on are the backpack.
	firstBackpackSlot = 6
)

// AssetLookup returns the last known icon resolution without doing any IO.
type AssetLookup func(kind assets.Kind, name string) (assets.Resolution, bool)

// CardContext carries everything besides the player needed to draw a card.
type CardContext struct {
	TeamKey  string
	Width    int
	Mirrored bool
	Selected bool
	Now      time.Time
	Tracker  *cooldown.Tracker
	Lookup   AssetLookup
	ZoneID   string
}

func (c CardContext) remaining(slotKey string, playerKey string) float64 {
	if c.Tracker == nil {
		return 0
	}

	return c.Tracker.Remaining(cooldown.Key(c.TeamKey, playerKey, slotKey), c.Now)
}

func (c CardContext) lookup(kind assets.Kind, name string) assets.Resolution {
	if c.Lookup == nil {
		return assets.Resolution{Status: assets.StatusUnknown}
	}

	resolution, found := c.Lookup(kind, name)
	if !found {
		return assets.Resolution{Status: assets.StatusUnknown}
	}

	return resolution
}

// line lays out segments left to right, or right to left when mirrored.
func (c CardContext) line(parts ...string) string {
	align := lipgloss.Left
	if c.Mirrored {
		parts = Reverse(parts)
		align = lipgloss.Right
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	return lipgloss.NewStyle().Width(c.Width).MaxWidth(c.Width).Align(align).Render(joined)
}

// PlayerZoneID identifies a card for mouse selection.
func PlayerZoneID(prefix string, teamKey string, playerKey string) string {
	return prefix + teamKey + "/" + playerKey
}

// PlayerCard renders a single player. Rows are the hero line, health and mana, abilities,
// teleport and neutral items, then the 3x3 inventory.
func PlayerCard(player gsi.PlayerView, ctx CardContext) string {
	if ctx.Selected {
		// Room for the selection marker.
		ctx.Width--
	}

	rows := []string{
		heroLine(player, ctx),
		vitalLine(player.HP, player.HPMax, styles.Health, ctx),
		vitalLine(player.Mana, player.ManaMax, styles.Mana, ctx),
		abilityLine(player, ctx),
		specialLine(player, ctx),
	}
	rows = append(rows, inventoryLines(player, ctx)...)

	card := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if ctx.Selected {
		card = lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, ctx.Mirrored, false, !ctx.Mirrored).
			BorderForeground(styles.Accent).Render(card)
	}

	return zone.Mark(PlayerZoneID(ctx.ZoneID, ctx.TeamKey, player.PlayerKey), card)
}

func heroLine(player gsi.PlayerView, ctx CardContext) string {
	nameStyle := styles.HeroName
	if player.Dead() {
		nameStyle = styles.HeroNameDead
	}

	level := styles.Level.Render(" " + Whole(player.Level))

	var status string
	if player.Dead() {
		status = " " + styles.Respawn.Render(RespawnLabel(player.RespawnSeconds))
	}

	stats := styles.Stats.Render(" " + Whole(player.Kills) + "/" + Whole(player.Deaths) + "/" + Whole(player.Assists) +
		" " + NetWorthLabel(player.NetWorth))

	available := ctx.Width - lipgloss.Width(level) - lipgloss.Width(status) - lipgloss.Width(stats)
	name := nameStyle.Render(Truncate(gsi.HeroDisplayName(player.HeroName), max(available, 4)))

	return ctx.line(name, level, status, stats)
}

// RespawnLabel shows the whole seconds until respawn, or DEAD when unknown.
func RespawnLabel(respawn gsi.Number) string {
	if !respawn.Valid {
		return styles.IconDead + " DEAD"
	}

	return styles.IconDead + " " + strconv.Itoa(int(math.Max(0, math.Ceil(respawn.Value))))
}

// NetWorthLabel renders 12345 as 12.3k.
func NetWorthLabel(netWorth gsi.Number) string {
	if !netWorth.Valid {
		return ""
	}

	if netWorth.Value >= 1000 {
		return strconv.FormatFloat(math.Floor(netWorth.Value/100)/10, 'f', 1, 64) + "k"
	}

	return Whole(netWorth)
}

func vitalLine(value gsi.Number, maxValue gsi.Number, colour lipgloss.Color, ctx CardContext) string {
	label := " " + Fraction(value, maxValue) + " "
	label = lipgloss.NewStyle().Width(12).Align(lipgloss.Right).Render(label)

	return ctx.line(Bar(value, maxValue, max(1, ctx.Width-lipgloss.Width(label)), colour), label)
}

func abilityLine(player gsi.PlayerView, ctx CardContext) string {
	cells := make([]string, 0, len(player.Abilities))
	for _, ability := range player.Abilities {
		if !assets.ShowAbility(ability.Passive, ctx.lookup(assets.KindAbility, ability.Name)) {
			continue
		}

		cells = append(cells, abilityCell(ability, player, ctx))
	}

	return ctx.line(cells...)
}

func abilityCell(ability gsi.Ability, player gsi.PlayerView, ctx CardContext) string {
	// Ability names are usually prefixed with the hero key.
	name := strings.TrimPrefix(ability.Name, gsi.HeroKey(player.HeroName)+"_")
	label := Abbreviate(gsi.AbilityFallbackLabel(name), abilityCellWidth-1)
	if ability.Charges.Valid && ability.Charges.Value != 0 {
		label += Whole(ability.Charges)
	}

	remaining := ctx.remaining(ability.Key, player.PlayerKey)
	if text, ok := cooldown.Label(remaining, ability.MaxCooldown.Or(0)); ok {
		return CooldownCell(text, cooldown.Ratio(remaining, ability.MaxCooldown.Or(0)), abilityCellWidth) + " "
	}

	style := styles.Cell
	switch {
	case ability.Level.Valid && ability.Level.Value <= 0:
		style = styles.AbilityUnlearnt
	case ability.Passive.True():
		style = styles.AbilityPassive
	}

	return style.Width(abilityCellWidth).Align(lipgloss.Center).Render(Truncate(label, abilityCellWidth)) + " "
}

func specialLine(player gsi.PlayerView, ctx CardContext) string {
	cells := make([]string, 0, 4)

	if len(player.Teleports) > 0 {
		teleport := player.Teleports[0]
		cells = append(cells, itemCell(teleport, "TP", player.PlayerKey, styles.Cell, ctx))
	} else {
		cells = append(cells, styles.CellEmpty.Width(itemCellWidth).Render(" ")+" ")
	}

	if crafting := player.NeutralCrafting; crafting != nil {
		trinket := gsi.ItemSlot{
			Key:         crafting.Trinket.Key,
			Name:        crafting.Trinket.Name,
			Cooldown:    crafting.Trinket.Cooldown,
			MaxCooldown: crafting.Trinket.MaxCooldown,
			Charges:     crafting.Trinket.Charges,
			Received:    true,
		}
		cells = append(cells, itemCell(trinket, "", player.PlayerKey, styles.Cell, ctx))

		enchantment := Truncate(gsi.ItemFallbackLabel(crafting.Enchantment.Name), itemCellWidth)
		if crafting.Enchantment.Charges.Valid && crafting.Enchantment.Charges.Value != 0 {
			enchantment = Truncate(enchantment, itemCellWidth-2) + styles.Charges.Render(Whole(crafting.Enchantment.Charges))
		}

		cells = append(cells, styles.AbilityPassive.Width(itemCellWidth).Render(enchantment)+" ")
	} else {
		for _, neutral := range player.Neutrals {
			if neutral.Occupied() {
				cells = append(cells, itemCell(neutral, "", player.PlayerKey, styles.Cell, ctx))
			}
		}
	}

	return ctx.line(cells...)
}

func inventoryLines(player gsi.PlayerView, ctx CardContext) []string {
	lines := make([]string, 0, gsi.InventorySlots/itemsPerRow)

	for row := 0; row < gsi.InventorySlots; row += itemsPerRow {
		cells := make([]string, 0, itemsPerRow)
		for slot := row; slot < row+itemsPerRow; slot++ {
			style := styles.Cell
			if slot >= firstBackpackSlot {
				style = styles.CellBackpack
			}

			cells = append(cells, itemCell(player.Items[slot], "", player.PlayerKey, style, ctx))
		}

		lines = append(lines, ctx.line(cells...))
	}

	return lines
}

// itemCell draws an inventory style cell with charges and a cooldown overlay. Empty slots
// render as a blank cell.
func itemCell(item gsi.ItemSlot, label string, playerKey string, style lipgloss.Style, ctx CardContext) string {
	if !item.Occupied() {
		return styles.CellEmpty.Width(itemCellWidth).Render(" ") + " "
	}

	if label == "" {
		label = gsi.ItemFallbackLabel(item.Name)
	}

	charges := ""
	if item.Charges.Valid && item.Charges.Value != 0 {
		charges = Whole(item.Charges)
	}

	remaining := ctx.remaining(item.Key, playerKey)
	if text, ok := cooldown.Label(remaining, item.MaxCooldown.Or(0)); ok {
		return CooldownCell(text, cooldown.Ratio(remaining, item.MaxCooldown.Or(0)), itemCellWidth) + " "
	}

	if ctx.lookup(assets.KindItem, item.Name).Status == assets.StatusNotFound {
		label = styles.IconMissing + label
	}

	text := Truncate(label, itemCellWidth-lipgloss.Width(charges))
	if charges != "" {
		text = lipgloss.PlaceHorizontal(itemCellWidth-lipgloss.Width(charges), lipgloss.Left, text) + styles.Charges.Render(charges)
	}

	return style.Width(itemCellWidth).Render(text) + " "
}
