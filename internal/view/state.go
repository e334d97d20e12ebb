// Package view turns the loaded alert list into the filtered, sorted or grouped
// rows a dashboard displays. State values are immutable: every user action is a
// method returning a new State.
package view

import (
	"slices"
	"sort"
	"strings"
)

// Mode selects which alerts are shown and how.
type Mode string

const (
	ModeWithBugs    Mode = "with-bugs"
	ModeWithoutBugs Mode = "without-bugs"
	ModeGrouped     Mode = "grouped"
)

// Modes lists every view mode in display order.
var Modes = []Mode{ModeWithBugs, ModeWithoutBugs, ModeGrouped}

// ParseMode returns the mode named s, false if s is not a known mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// ParseDirection accepts "asc" and "desc".
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Asc, Desc:
		return Direction(s), true
	}
	return "", false
}

// Sort orders the flat views. A zero Column means fetch order.
type Sort struct {
	Column    Column
	Direction Direction
}

// GroupSort orders the groups of the grouped view.
type GroupSort struct {
	Column    GroupColumn
	Direction Direction
}

// State is everything the user can change about the view.
type State struct {
	Mode                Mode
	Platforms           []string
	ProbeTerms          []string
	DateFrom            string
	DateTo              string
	GroupedWithBugsOnly bool
	Sort                Sort
	GroupSort           GroupSort
}

// Default returns the state of a fresh page.
func Default() State {
	return State{
		Mode:      ModeWithBugs,
		Sort:      Sort{Direction: Asc},
		GroupSort: GroupSort{Column: GroupBySummaryID, Direction: Desc},
	}
}

// HasPlatform reports whether p is in the platform filter
func (s State) HasPlatform(p string) bool {
	return slices.Contains(s.Platforms, p)
}

// WithMode switches the view mode.
func (s State) WithMode(m Mode) State {
	s.Mode = m
	return s
}

// WithPlatforms replaces the platform filter. Empty names are ignored and
// duplicates collapse.
func (s State) WithPlatforms(platforms []string) State {
	s.Platforms = normalizePlatforms(platforms)
	return s
}

// TogglePlatform adds p to the platform filter, or removes it when present.
func (s State) TogglePlatform(p string) State {
	if p == "" {
		return s
	}
	next := make([]string, 0, len(s.Platforms)+1)
	found := false
	for _, existing := range s.Platforms {
		if existing == p {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, p)
	}
	s.Platforms = normalizePlatforms(next)
	return s
}

// WithProbeSearch sets the probe terms from free text: whitespace separated,
// lowercased, empty tokens dropped.
func (s State) WithProbeSearch(text string) State {
	s.ProbeTerms = ParseProbeTerms(text)
	return s
}

// WithDateFrom sets the inclusive lower push date bound, "" clears it.
func (s State) WithDateFrom(d string) State {
	s.DateFrom = strings.TrimSpace(d)
	return s
}

// WithDateTo sets the inclusive upper push date bound, "" clears it.
func (s State) WithDateTo(d string) State {
	s.DateTo = strings.TrimSpace(d)
	return s
}

// ToggleGroupedWithBugsOnly flips the grouped view "with bugs only" filter.
func (s State) ToggleGroupedWithBugsOnly() State {
	s.GroupedWithBugsOnly = !s.GroupedWithBugsOnly
	return s
}

// ClearFilters drops every filter. Mode and sorting are kept.
func (s State) ClearFilters() State {
	s.Platforms = nil
	s.ProbeTerms = nil
	s.DateFrom = ""
	s.DateTo = ""
	s.GroupedWithBugsOnly = false
	return s
}

// SortBy sorts the flat views by c. Selecting the current column flips the
// direction; a new column starts ascending.
func (s State) SortBy(c Column) State {
	if s.Sort.Column == c && c != NoColumn {
		s.Sort.Direction = s.Sort.Direction.Flip()
		return s
	}
	s.Sort = Sort{Column: c, Direction: Asc}
	return s
}

// SortGroupsBy sorts the groups by c. Selecting the current column flips the
// direction; a new column always starts descending.
func (s State) SortGroupsBy(c GroupColumn) State {
	if s.GroupSort.Column == c {
		s.GroupSort.Direction = s.GroupSort.Direction.Flip()
		return s
	}
	s.GroupSort = GroupSort{Column: c, Direction: Desc}
	return s
}

// ParseProbeTerms splits free text into lowercase search terms.
func ParseProbeTerms(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = strings.ToLower(f)
	}
	return terms
}

func normalizePlatforms(platforms []string) []string {
	set := make(map[string]struct{}, len(platforms))
	for _, p := range platforms {
		if p != "" {
			set[p] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
