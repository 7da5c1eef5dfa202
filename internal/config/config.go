// Package config loads the tournament configuration (spec §6): the pinned
// JSON document describing game, bot and tournament parameters, plus an
// optional HCL overlay that lets an operator override individual blind
// tiers without hand-editing the JSON blinds_schedule array.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Game holds the table-level settings.
type Game struct {
	StartingChips int     `json:"starting_chips"`
	NumDecks      int     `json:"num_decks"`
	MaxTableSize  int     `json:"max_table_size"`
	Visual        bool    `json:"visual"`
	Delay         float64 `json:"delay"`
}

// Bot is one seat's identity and TCP endpoint.
type Bot struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port int    `json:"port"`
}

// BlindLevel is one entry of the blinds schedule.
type BlindLevel struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

// Tournament holds the bracket and blind-escalation parameters.
type Tournament struct {
	AdvancePerTable   int          `json:"advance_per_table"`
	HandsPerMatch     int          `json:"hands_per_match"`
	BlindStepPerRound int          `json:"blind_step_per_round"`
	BlindStepPerTier  int          `json:"blind_step_per_tier"`
	BlindsSchedule    []BlindLevel `json:"blinds_schedule"`
}

// Config is the full pinned configuration document.
type Config struct {
	Game       Game       `json:"game"`
	Bots       []Bot      `json:"bots"`
	Tournament Tournament `json:"tournament"`
}

// Load reads and parses the JSON configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Game.NumDecks < 1 {
		cfg.Game.NumDecks = 1
	}
	return &cfg, nil
}

// BlindLevelAt returns the schedule entry at idx, clamped to the schedule's
// length (spec §4.6: "select the current blind level ... clamped to
// schedule length").
func (c *Config) BlindLevelAt(idx int) BlindLevel {
	if len(c.Tournament.BlindsSchedule) == 0 {
		return BlindLevel{Small: 1, Big: 2}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Tournament.BlindsSchedule) {
		idx = len(c.Tournament.BlindsSchedule) - 1
	}
	return c.Tournament.BlindsSchedule[idx]
}
