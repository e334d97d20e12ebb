// Package urlstate maps dashboard view state to and from URL query parameters
// so that a view can be shared or bookmarked.
package urlstate

import (
	"net/url"
	"strings"

	"alertdash/internal/view"
)

// Query parameter names.
const (
	ParamView                = "view"
	ParamPlatforms           = "platforms"
	ParamProbe               = "probe"
	ParamDateFrom            = "dateFrom"
	ParamDateTo              = "dateTo"
	ParamGroupedWithBugsOnly = "groupedWithBugsOnly"

	// Sort parameters are request scoped: header links carry them but Encode
	// never writes them.
	ParamSort      = "sort"
	ParamDir       = "dir"
	ParamGroupSort = "groupSort"
	ParamGroupDir  = "groupDir"
)

// Encode returns the query parameters describing st. Default and empty
// values produce no parameter.
func Encode(st view.State) url.Values {
	q := url.Values{}
	Apply(q, st)
	return q
}

// Apply writes st into q, deleting parameters whose value is the default.
// Parameters that do not belong to the view state are left alone. Platforms
// are comma joined; commas and percent signs inside a name are escaped.
func Apply(q url.Values, st view.State) {
	setOrDelete(q, ParamView, modeParam(st.Mode))
	setOrDelete(q, ParamPlatforms, joinPlatforms(st.Platforms))
	setOrDelete(q, ParamProbe, strings.Join(st.ProbeTerms, " "))
	setOrDelete(q, ParamDateFrom, st.DateFrom)
	setOrDelete(q, ParamDateTo, st.DateTo)
	if st.GroupedWithBugsOnly {
		q.Set(ParamGroupedWithBugsOnly, "true")
	} else {
		q.Del(ParamGroupedWithBugsOnly)
	}
}

// Decode reads the view state from q. Missing or unrecognised parameters
// keep their defaults; Decode never fails.
func Decode(q url.Values) view.State {
	st := view.Default()

	if m, ok := view.ParseMode(q.Get(ParamView)); ok {
		st = st.WithMode(m)
	}
	if p := q.Get(ParamPlatforms); p != "" {
		st = st.WithPlatforms(splitPlatforms(p))
	}
	if p := q.Get(ParamProbe); p != "" {
		st = st.WithProbeSearch(p)
	}
	st = st.WithDateFrom(q.Get(ParamDateFrom))
	st = st.WithDateTo(q.Get(ParamDateTo))
	st.GroupedWithBugsOnly = q.Get(ParamGroupedWithBugsOnly) == "true"

	return st
}

// DecodeSort reads the request scoped sort parameters into st.
func DecodeSort(q url.Values, st view.State) view.State {
	if c, ok := view.ParseColumn(q.Get(ParamSort)); ok {
		st.Sort = view.Sort{Column: c, Direction: view.Asc}
		if d, ok := view.ParseDirection(q.Get(ParamDir)); ok {
			st.Sort.Direction = d
		}
	}
	if c, ok := view.ParseGroupColumn(q.Get(ParamGroupSort)); ok {
		st.GroupSort = view.GroupSort{Column: c, Direction: view.Desc}
		if d, ok := view.ParseDirection(q.Get(ParamGroupDir)); ok {
			st.GroupSort.Direction = d
		}
	}
	return st
}

// EncodeSort adds the sort parameters of st to q. The grouped sort is only
// written when it differs from the default.
func EncodeSort(q url.Values, st view.State) {
	if st.Sort.Column != view.NoColumn {
		q.Set(ParamSort, st.Sort.Column.String())
		q.Set(ParamDir, string(st.Sort.Direction))
	} else {
		q.Del(ParamSort)
		q.Del(ParamDir)
	}

	def := view.Default().GroupSort
	if st.GroupSort != def {
		q.Set(ParamGroupSort, st.GroupSort.Column.String())
		q.Set(ParamGroupDir, string(st.GroupSort.Direction))
	} else {
		q.Del(ParamGroupSort)
		q.Del(ParamGroupDir)
	}
}

var (
	platformEscaper   = strings.NewReplacer("%", "%25", ",", "%2C")
	platformUnescaper = strings.NewReplacer("%2C", ",", "%2c", ",", "%25", "%")
)

func joinPlatforms(platforms []string) string {
	escaped := make([]string, len(platforms))
	for i, p := range platforms {
		escaped[i] = platformEscaper.Replace(p)
	}
	return strings.Join(escaped, ",")
}

func splitPlatforms(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = platformUnescaper.Replace(p)
	}
	return parts
}

func modeParam(m view.Mode) string {
	if m == view.ModeWithBugs || m == "" {
		return ""
	}
	return string(m)
}

func setOrDelete(q url.Values, key, value string) {
	if value == "" {
		q.Del(key)
		return
	}
	q.Set(key, value)
}
