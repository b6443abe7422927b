package gsi

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	HeroPrefix = "npc_dota_hero_"
	ItemPrefix = "item_"
)

// HeroKey strips the npc_dota_hero_ prefix.
func HeroKey(name string) string {
	return strings.TrimPrefix(name, HeroPrefix)
}

// ItemKey strips the item_ prefix.
func ItemKey(name string) string {
	return strings.TrimPrefix(name, ItemPrefix)
}

// HeroDisplayName returns "Anti Mage" for npc_dota_hero_anti_mage.
func HeroDisplayName(name string) string {
	return titleWords(HeroKey(name))
}

// ItemFallbackLabel is shown in place of an item icon.
func ItemFallbackLabel(name string) string {
	return titleWords(ItemKey(name))
}

// AbilityFallbackLabel is shown in place of an ability icon.
func AbilityFallbackLabel(name string) string {
	return titleWords(name)
}

func titleWords(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool { return r == '_' })
	for idx, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[idx] = string(unicode.ToUpper(first)) + word[size:]
	}

	return strings.Join(words, " ")
}
