// Package assets resolves hero, item and ability icon URLs against the Steam CDN mirrors.
package assets

import (
	"strings"

	"github.com/leighmacdonald/dota-tui/internal/cache"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
)

type Kind int

const (
	KindHero Kind = iota
	KindItem
	KindAbility
)

func (k Kind) String() string {
	return k.variant().String()
}

func (k Kind) variant() cache.ItemVariant {
	switch k {
	case KindItem:
		return cache.CacheAssetItem
	case KindAbility:
		return cache.CacheAssetAbility
	case KindHero:
		fallthrough
	default:
		return cache.CacheAssetHero
	}
}

// shortCircuit kinds treat the first 404 as proof the asset does not exist. Heroes have a
// second path layout that may still exist when the first one is missing.
func (k Kind) shortCircuit() bool {
	return k == KindAbility
}

// URLs joins path onto every host, preserving host order.
func URLs(hosts []string, path string) []string {
	path = strings.TrimPrefix(path, "/")
	urls := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if !strings.HasSuffix(host, "/") {
			host += "/"
		}
		urls = append(urls, host+path)
	}

	return urls
}

// Candidates lists the URLs to probe, in order, for an asset.
func Candidates(hosts []string, kind Kind, name string) []string {
	switch kind {
	case KindItem:
		return URLs(hosts, "apps/dota2/images/dota_react/items/"+gsi.ItemKey(name)+".png")
	case KindAbility:
		return URLs(hosts, "apps/dota2/images/dota_react/abilities/"+name+".png")
	case KindHero:
		fallthrough
	default:
		heroKey := gsi.HeroKey(name)

		return append(
			URLs(hosts, "apps/dota2/images/dota_react/heroes/"+heroKey+".png"),
			URLs(hosts, "apps/dota2/images/heroes/"+heroKey+"_full.png")...)
	}
}
