package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Watchlist is the operator's set of flagged aircraft registrations. Two
// YAML shapes are accepted — a mapping of registration to display label,
// or a legacy bare list of registrations — and both collapse into one
// tagged representation here so render code never type-switches.
type Watchlist struct {
	// labels is keyed by upper-cased registration; the value is the
	// operator's label, "" for list-form entries.
	labels map[string]string
}

// NewWatchlist builds a watchlist from a registration-to-label mapping.
// Labels may be empty.
func NewWatchlist(entries map[string]string) Watchlist {
	labels := make(map[string]string, len(entries))
	for reg, label := range entries {
		labels[strings.ToUpper(reg)] = label
	}
	return Watchlist{labels: labels}
}

// UnmarshalYAML accepts either YAML shape.
func (w *Watchlist) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var entries map[string]string
		if err := value.Decode(&entries); err != nil {
			return fmt.Errorf("watchlist mapping: %w", err)
		}
		*w = NewWatchlist(entries)
		return nil
	case yaml.SequenceNode:
		var regs []string
		if err := value.Decode(&regs); err != nil {
			return fmt.Errorf("watchlist list: %w", err)
		}
		entries := make(map[string]string, len(regs))
		for _, reg := range regs {
			entries[reg] = ""
		}
		*w = NewWatchlist(entries)
		return nil
	default:
		return fmt.Errorf("watchlist must be a mapping or a list, got %v", value.Kind)
	}
}

// Match reports whether the registration is watched, and the label to
// show for it ("" when the entry has no label). Matching is
// case-insensitive; an empty registration never matches.
func (w Watchlist) Match(registration string) (string, bool) {
	if registration == "" || len(w.labels) == 0 {
		return "", false
	}
	label, ok := w.labels[strings.ToUpper(registration)]
	return label, ok
}

// Len returns the number of watched registrations.
func (w Watchlist) Len() int {
	return len(w.labels)
}
