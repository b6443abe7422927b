package gsi

import "github.com/leighmacdonald/steamid/v4/steamid"

const (
	// EmptySlot is the item name the game uses for an unoccupied slot.
	EmptySlot = "empty"
	// InventorySlots is the fixed number of inventory slots, 6 main and 3 backpack.
	InventorySlots = 9
	// MaxSpecialItems caps teleport and neutral extraction.
	MaxSpecialItems = 3
)

// ItemSlot is a single inventory, teleport or neutral slot.
type ItemSlot struct {
	Key         string
	Name        string
	Cooldown    Number
	MaxCooldown Number
	Charges     Number
	// Received is false when the slot object was missing from the snapshot entirely.
	Received bool
}

// Occupied reports whether the slot holds an item.
func (s ItemSlot) Occupied() bool {
	return s.Name != "" && s.Name != EmptySlot
}

// SpecialItem is a teleport or neutral slot.
type SpecialItem = ItemSlot

// Ability is a hero ability that passed the hidden-name filter.
type Ability struct {
	Key         string
	Name        string
	Level       Number
	Cooldown    Number
	MaxCooldown Number
	Charges     Number
	Passive     Flag
	Ultimate    Flag
}

// Enchantment is the selected half of a neutral crafting tier with no cooldown of its own.
type Enchantment struct {
	Name    string
	Charges Number
}

// Trinket is the selected usable half of a neutral crafting tier.
type Trinket struct {
	Key         string
	Name        string
	Cooldown    Number
	MaxCooldown Number
	Charges     Number
}

// NeutralCraftingSelection is the highest tier with both halves selected.
type NeutralCraftingSelection struct {
	TierKey     string
	Enchantment Enchantment
	Trinket     Trinket
}

// PlayerView is everything shown on a single player card.
type PlayerView struct {
	PlayerKey      string
	HeroName       string
	Level          Number
	HP             Number
	HPMax          Number
	Mana           Number
	ManaMax        Number
	Alive          Flag
	RespawnSeconds Number
	Items          [InventorySlots]ItemSlot
	// Teleports holds at most teleport0, and only when it is occupied.
	Teleports       []SpecialItem
	Neutrals        []SpecialItem
	NeutralCrafting *NeutralCraftingSelection
	Abilities       []Ability

	Name     string
	SteamID  steamid.SteamID
	Kills    Number
	Deaths   Number
	Assists  Number
	LastHits Number
	Denies   Number
	Gold     Number
	NetWorth Number
	GPM      Number
	XPM      Number
}

// Dead reports whether the hero is explicitly not alive.
func (p PlayerView) Dead() bool {
	return p.Alive.False()
}

// TeamView is one team column. The first team renders unmirrored, later teams mirrored.
type TeamView struct {
	TeamKey   string
	TeamLabel string
	Players   []PlayerView
}
