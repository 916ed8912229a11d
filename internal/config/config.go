// Package config loads the static event configuration: the member roster with
// kana readings, the festival shift schedule, the admin secret, and the venue
// notes shown on the board. The configuration is read once at startup and
// never mutated.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"shiftboard/internal/domain/roster"
	"shiftboard/internal/domain/shift"
)

// Member is one roster entry in the config file.
type Member struct {
	Name    string `yaml:"name"`
	Reading string `yaml:"reading"`
}

// ShiftEntry is one staffed slot on an event day.
type ShiftEntry struct {
	Time    string   `yaml:"time"`
	Start   int      `yaml:"start"`
	End     int      `yaml:"end"`
	Members []string `yaml:"members"`
}

// ShiftDay is one event day's shift plan.
type ShiftDay struct {
	Date   string       `yaml:"date"`
	Shifts []ShiftEntry `yaml:"shifts"`
}

// NoteSection is one block of venue notes. Items are markdown.
type NoteSection struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Config is the full event configuration.
type Config struct {
	EventName   string        `yaml:"event_name"`
	Members     []Member      `yaml:"members"`
	Schedule    []ShiftDay    `yaml:"schedule"`
	AdminSecret string        `yaml:"admin_secret"`
	Notes       []NoteSection `yaml:"notes"`
}

// Load reads the configuration from path, or returns the built-in defaults
// when path is empty. The SHIFTBOARD_ADMIN_SECRET environment variable, when
// set, overrides the configured admin secret.
// PRE: path is empty or names a readable YAML file
// POST: Returns a validated Config or an error
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if secret := os.Getenv("SHIFTBOARD_ADMIN_SECRET"); secret != "" {
		cfg.AdminSecret = secret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
// PRE: Config is populated
// POST: Returns nil if valid, error otherwise
func (c Config) Validate() error {
	if len(c.Members) == 0 {
		return fmt.Errorf("config: at least one member is required")
	}
	if err := c.Roster().Validate(); err != nil {
		return fmt.Errorf("config members: %w", err)
	}
	if c.AdminSecret == "" {
		return fmt.Errorf("config: admin secret cannot be empty")
	}
	for i, d := range c.ShiftDays() {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("config schedule day %d: %w", i, err)
		}
	}
	return nil
}

// Roster converts the configured members to the domain roster.
func (c Config) Roster() roster.Roster {
	r := make(roster.Roster, len(c.Members))
	for i, m := range c.Members {
		r[i] = roster.Member{Name: m.Name, Reading: m.Reading}
	}
	return r
}

// ShiftDays converts the configured schedule to domain shift days.
func (c Config) ShiftDays() []shift.Day {
	days := make([]shift.Day, len(c.Schedule))
	for i, d := range c.Schedule {
		shifts := make([]shift.Shift, len(d.Shifts))
		for j, s := range d.Shifts {
			shifts[j] = shift.Shift{
				Time:      s.Time,
				StartHour: s.Start,
				EndHour:   s.End,
				Members:   s.Members,
			}
		}
		days[i] = shift.Day{Date: d.Date, Shifts: shifts}
	}
	return days
}
