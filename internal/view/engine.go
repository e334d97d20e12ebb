package view

import (
	"sort"
	"strings"
	"time"

	"alertdash/internal/models"
)

const dateLayout = "2006-01-02"

// Group is the alerts sharing one alert summary.
type Group struct {
	SummaryID int64
	Alerts    []*models.Alert
	Count     int
	// MostRecent is the latest Created among members, zero when none has one.
	MostRecent time.Time
	// DetectionDate is the PushDate of the first member in fetch order.
	DetectionDate *time.Time
}

// Result is the output of Compute. Flat modes fill Alerts, the grouped mode
// fills Groups. Alert pointers refer into the slice given to Compute.
type Result struct {
	Mode   Mode
	Alerts []*models.Alert
	Groups []Group
}

// Total returns the number of alerts shown.
func (r Result) Total() int {
	if r.Mode != ModeGrouped {
		return len(r.Alerts)
	}
	n := 0
	for i := range r.Groups {
		n += r.Groups[i].Count
	}
	return n
}

// Compute applies the view mode, filters and ordering of st to alerts.
// It never fails; no matching alerts yields an empty Result.
func Compute(alerts []models.Alert, st State) Result {
	mode := st.Mode
	if _, ok := ParseMode(string(mode)); !ok {
		mode = ModeWithBugs
	}

	from, hasFrom := parseDay(st.DateFrom)
	to, hasTo := parseDay(st.DateTo)
	dateActive := st.DateFrom != "" || st.DateTo != ""
	terms := lowerTerms(st.ProbeTerms)

	filtered := make([]*models.Alert, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		if !matchesMode(a, mode) {
			continue
		}
		if len(st.Platforms) > 0 && !st.HasPlatform(a.Platform) {
			continue
		}
		if len(terms) > 0 && !matchesProbe(a, terms) {
			continue
		}
		if dateActive && !matchesDates(a, from, hasFrom, to, hasTo) {
			continue
		}
		filtered = append(filtered, a)
	}

	if mode == ModeGrouped {
		return Result{Mode: mode, Groups: groupAlerts(filtered, st.GroupedWithBugsOnly, st.GroupSort)}
	}

	if st.Sort.Column != NoColumn {
		sortAlerts(filtered, st.Sort)
	}
	return Result{Mode: mode, Alerts: filtered}
}

func matchesMode(a *models.Alert, mode Mode) bool {
	switch mode {
	case ModeWithBugs:
		return a.HasBug()
	case ModeWithoutBugs:
		return !a.HasBug()
	default:
		return true
	}
}

// matchesProbe is true when the probe contains any one of the terms.
func matchesProbe(a *models.Alert, terms []string) bool {
	if a.Probe == nil {
		return false
	}
	probe := strings.ToLower(*a.Probe)
	for _, term := range terms {
		if strings.Contains(probe, term) {
			return true
		}
	}
	return false
}

// matchesDates compares the push date's calendar day against inclusive bounds.
// A bound that is set but does not parse does not constrain.
func matchesDates(a *models.Alert, from time.Time, hasFrom bool, to time.Time, hasTo bool) bool {
	if a.PushDate == nil {
		return false
	}
	day := calendarDay(*a.PushDate)
	if hasFrom && day.Before(from) {
		return false
	}
	if hasTo && day.After(to) {
		return false
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func lowerTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

// sortAlerts stably sorts in place. Absent values go last in both directions.
func sortAlerts(alerts []*models.Alert, s Sort) {
	kind := s.Column.Kind()
	keys := make(map[*models.Alert]sortKey, len(alerts))
	for _, a := range alerts {
		keys[a] = s.Column.key(a)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return less(kind, keys[alerts[i]], keys[alerts[j]], s.Direction)
	})
}

func less(kind Kind, a, b sortKey, dir Direction) bool {
	switch {
	case !a.present:
		return false
	case !b.present:
		return true
	}
	c := compareKeys(kind, a, b)
	if dir == Desc {
		return c > 0
	}
	return c < 0
}

func groupAlerts(alerts []*models.Alert, withBugsOnly bool, gs GroupSort) []Group {
	index := make(map[int64]int)
	var groups []Group
	for _, a := range alerts {
		i, ok := index[a.AlertSummaryID]
		if !ok {
			i = len(groups)
			index[a.AlertSummaryID] = i
			groups = append(groups, Group{SummaryID: a.AlertSummaryID, DetectionDate: a.PushDate})
		}
		g := &groups[i]
		g.Alerts = append(g.Alerts, a)
		g.Count++
		if a.Created != nil && a.Created.After(g.MostRecent) {
			g.MostRecent = *a.Created
		}
	}

	if withBugsOnly {
		kept := groups[:0]
		for _, g := range groups {
			if anyBug(g.Alerts) {
				kept = append(kept, g)
			}
		}
		groups = kept
	}

	// Ties keep ascending summary order.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].SummaryID < groups[j].SummaryID
	})
	kind := gs.Column.kind()
	sort.SliceStable(groups, func(i, j int) bool {
		return less(kind, gs.Column.key(&groups[i]), gs.Column.key(&groups[j]), gs.Direction)
	})

	return groups
}

func anyBug(alerts []*models.Alert) bool {
	for _, a := range alerts {
		if a.HasBug() {
			return true
		}
	}
	return false
}
