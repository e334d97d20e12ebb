package view

import (
	"strings"
	"time"

	"alertdash/internal/models"
)

// Kind is how a column's values compare.
type Kind int

const (
	KindNumeric Kind = iota
	KindDate
	KindText
)

// Column is a sortable field of the flat views.
type Column int

const (
	NoColumn Column = iota
	ColumnAlertID
	ColumnAlertSummaryID
	ColumnBug
	ColumnBugStatus
	ColumnProbe
	ColumnPlatform
	ColumnPushDate
	ColumnCreated
)

// sortKey is an extracted column value. present is false for absent values.
type sortKey struct {
	present bool
	n       int64
	t       time.Time
	s       string
}

type columnDef struct {
	name    string
	kind    Kind
	extract func(a *models.Alert) sortKey
}

var columnDefs = map[Column]columnDef{
	ColumnAlertID: {"alertId", KindNumeric, func(a *models.Alert) sortKey {
		return sortKey{present: true, n: a.AlertID}
	}},
	ColumnAlertSummaryID: {"alertSummaryId", KindNumeric, func(a *models.Alert) sortKey {
		return sortKey{present: true, n: a.AlertSummaryID}
	}},
	ColumnBug: {"bug", KindNumeric, func(a *models.Alert) sortKey {
		if a.Bug == nil {
			return sortKey{}
		}
		return sortKey{present: true, n: *a.Bug}
	}},
	ColumnBugStatus: {"bugStatus", KindText, func(a *models.Alert) sortKey {
		return textKey(a.BugStatus)
	}},
	ColumnProbe: {"probe", KindText, func(a *models.Alert) sortKey {
		return textKey(a.Probe)
	}},
	ColumnPlatform: {"platform", KindText, func(a *models.Alert) sortKey {
		if a.Platform == "" {
			return sortKey{}
		}
		return sortKey{present: true, s: strings.ToLower(a.Platform)}
	}},
	ColumnPushDate: {"pushDate", KindDate, func(a *models.Alert) sortKey {
		return dateKey(a.PushDate)
	}},
	ColumnCreated: {"created", KindDate, func(a *models.Alert) sortKey {
		return dateKey(a.Created)
	}},
}

// Columns lists the sortable columns.
var Columns = []Column{
	ColumnAlertID, ColumnAlertSummaryID, ColumnBug, ColumnBugStatus,
	ColumnProbe, ColumnPlatform, ColumnPushDate, ColumnCreated,
}

// String returns the column's wire name, "" for NoColumn.
func (c Column) String() string {
	return columnDefs[c].name
}

// Kind returns how the column compares
func (c Column) Kind() Kind {
	return columnDefs[c].kind
}

// ParseColumn looks a column up by wire name.
func ParseColumn(name string) (Column, bool) {
	for _, c := range Columns {
		if columnDefs[c].name == name {
			return c, true
		}
	}
	return NoColumn, false
}

func (c Column) key(a *models.Alert) sortKey {
	def, ok := columnDefs[c]
	if !ok {
		return sortKey{}
	}
	return def.extract(a)
}

func textKey(s *string) sortKey {
	if s == nil {
		return sortKey{}
	}
	return sortKey{present: true, s: strings.ToLower(*s)}
}

func dateKey(t *time.Time) sortKey {
	if t == nil {
		return sortKey{}
	}
	return sortKey{present: true, t: *t}
}

// compareKeys orders present values by kind; both must be present.
func compareKeys(kind Kind, a, b sortKey) int {
	switch kind {
	case KindNumeric:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
		return 0
	case KindDate:
		return a.t.Compare(b.t)
	default:
		return strings.Compare(a.s, b.s)
	}
}

// GroupColumn is a sortable field of the grouped view.
type GroupColumn int

const (
	GroupBySummaryID GroupColumn = iota
	GroupByCount
	GroupByMostRecent
	GroupByDetectionDate
)

var groupColumnNames = map[GroupColumn]string{
	GroupBySummaryID:     "summaryId",
	GroupByCount:         "count",
	GroupByMostRecent:    "mostRecent",
	GroupByDetectionDate: "detectionDate",
}

// GroupColumns lists the grouped view columns in display order.
var GroupColumns = []GroupColumn{GroupBySummaryID, GroupByCount, GroupByMostRecent, GroupByDetectionDate}

func (c GroupColumn) String() string {
	return groupColumnNames[c]
}

// ParseGroupColumn looks a grouped column up by wire name.
func ParseGroupColumn(name string) (GroupColumn, bool) {
	for _, c := range GroupColumns {
		if groupColumnNames[c] == name {
			return c, true
		}
	}
	return GroupBySummaryID, false
}

func (c GroupColumn) key(g *Group) sortKey {
	switch c {
	case GroupByCount:
		return sortKey{present: true, n: int64(g.Count)}
	case GroupByMostRecent:
		return sortKey{present: true, t: g.MostRecent}
	case GroupByDetectionDate:
		return dateKey(g.DetectionDate)
	default:
		return sortKey{present: true, n: g.SummaryID}
	}
}

func (c GroupColumn) kind() Kind {
	switch c {
	case GroupByMostRecent, GroupByDetectionDate:
		return KindDate
	default:
		return KindNumeric
	}
}
