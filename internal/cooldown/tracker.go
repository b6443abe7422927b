package cooldown

import (
	"time"

	"github.com/leighmacdonald/dota-tui/internal/gsi"
)

// Tracker holds one estimate per rendered entity. It is owned by the UI update loop and is
// not safe for concurrent use.
type Tracker struct {
	estimates map[string]Estimate
}

func NewTracker() *Tracker {
	return &Tracker{estimates: map[string]Estimate{}}
}

// Observe records a server-confirmed value. Every observation resets the local clock, even
// when the value did not change. Absent values count as 0.
func (t *Tracker) Observe(key string, cooldown gsi.Number, maxCooldown gsi.Number, now time.Time) {
	t.estimates[key] = New(cooldown.Or(0), maxCooldown.Or(0), now)
}

// Get returns the estimate for key.
func (t *Tracker) Get(key string) (Estimate, bool) {
	estimate, found := t.estimates[key]

	return estimate, found
}

// Remaining is the smoothed value for key, 0 when nothing was observed.
func (t *Tracker) Remaining(key string, now time.Time) float64 {
	estimate, found := t.estimates[key]
	if !found {
		return 0
	}

	return estimate.Remaining(now)
}

// Active reports whether any estimate is still counting down.
func (t *Tracker) Active(now time.Time) bool {
	for _, estimate := range t.estimates {
		if estimate.Active(now) {
			return true
		}
	}

	return false
}

// Retain drops every estimate whose key is not in keys.
func (t *Tracker) Retain(keys map[string]struct{}) {
	for key := range t.estimates {
		if _, found := keys[key]; !found {
			delete(t.estimates, key)
		}
	}
}

func (t *Tracker) Len() int {
	return len(t.estimates)
}

// Key builds the identity of a cooldown-bearing entity, e.g. team2/player0/ability1.
func Key(teamKey string, playerKey string, slotKey string) string {
	return teamKey + "/" + playerKey + "/" + slotKey
}

// ObserveTeams feeds every cooldown-bearing entity of a projection into the tracker and drops
// estimates for entities no longer present.
func (t *Tracker) ObserveTeams(teams []gsi.TeamView, now time.Time) {
	seen := map[string]struct{}{}
	observe := func(key string, cooldown gsi.Number, maxCooldown gsi.Number) {
		seen[key] = struct{}{}
		t.Observe(key, cooldown, maxCooldown, now)
	}

	for _, team := range teams {
		for _, player := range team.Players {
			for _, ability := range player.Abilities {
				observe(Key(team.TeamKey, player.PlayerKey, ability.Key), ability.Cooldown, ability.MaxCooldown)
			}

			for _, item := range player.Items {
				if item.Occupied() {
					observe(Key(team.TeamKey, player.PlayerKey, item.Key), item.Cooldown, item.MaxCooldown)
				}
			}

			for _, item := range player.Teleports {
				observe(Key(team.TeamKey, player.PlayerKey, item.Key), item.Cooldown, item.MaxCooldown)
			}

			for _, item := range player.Neutrals {
				if item.Occupied() {
					observe(Key(team.TeamKey, player.PlayerKey, item.Key), item.Cooldown, item.MaxCooldown)
				}
			}

			if crafting := player.NeutralCrafting; crafting != nil {
				observe(Key(team.TeamKey, player.PlayerKey, crafting.Trinket.Key),
					crafting.Trinket.Cooldown, crafting.Trinket.MaxCooldown)
			}
		}
	}

	t.Retain(seen)
}
