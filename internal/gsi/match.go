package gsi

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MatchInfo holds the header values of a snapshot.
type MatchInfo struct {
	// MatchTime is map.clock_time, falling back to map.game_time.
	MatchTime         Number
	Daytime           Flag
	NightstalkerNight Flag
	// ProviderTimestamp is the game client's clock, in epoch seconds.
	ProviderTimestamp Number
	MatchID           string
	GameState         string
	Paused            Flag
}

// Match extracts the header values from a raw snapshot.
func Match(raw Object) MatchInfo {
	mapInfo := raw.Object("map")

	return MatchInfo{
		MatchTime:         mapInfo.FirstNumber("clock_time", "game_time"),
		Daytime:           mapInfo.Flag("daytime"),
		NightstalkerNight: mapInfo.Flag("nightstalker_night"),
		ProviderTimestamp: raw.Object("provider").Number("timestamp"),
		MatchID:           mapInfo.String("matchid"),
		GameState:         mapInfo.String("game_state"),
		Paused:            mapInfo.Flag("paused"),
	}
}

// IsNight uses only the flags the server sends. The clock is never used to guess.
func (m MatchInfo) IsNight() bool {
	if m.NightstalkerNight.True() {
		return true
	}

	return m.Daytime.False()
}

// ProviderTime converts the provider timestamp, if any.
func (m MatchInfo) ProviderTime() (time.Time, bool) {
	if !m.ProviderTimestamp.Valid {
		return time.Time{}, false
	}

	return time.Unix(int64(m.ProviderTimestamp.Value), 0), true
}

// GameStateLabel turns DOTA_GAMERULES_STATE_GAME_IN_PROGRESS into "Game In Progress".
func (m MatchInfo) GameStateLabel() string {
	return titleWords(strings.ToLower(strings.TrimPrefix(m.GameState, "DOTA_GAMERULES_STATE_")))
}

// FormatDuration renders seconds as m:ss, keeping the sign of negative pre-horn times.
func FormatDuration(value Number) string {
	if !value.Valid {
		return "-"
	}

	sign := ""
	if value.Value < 0 {
		sign = "-"
	}

	abs := int(math.Abs(math.Trunc(value.Value)))

	return fmt.Sprintf("%s%d:%02d", sign, abs/60, abs%60)
}
