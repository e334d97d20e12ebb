package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("grouped")
	assert.True(t, ok)
	assert.Equal(t, ModeGrouped, m)

	_, ok = ParseMode("everything")
	assert.False(t, ok)
}

func TestSortByTogglesAndResets(t *testing.T) {
	st := Default().SortBy(ColumnProbe)
	assert.Equal(t, Sort{Column: ColumnProbe, Direction: Asc}, st.Sort)

	st = st.SortBy(ColumnProbe)
	assert.Equal(t, Sort{Column: ColumnProbe, Direction: Desc}, st.Sort)

	st = st.SortBy(ColumnBug)
	assert.Equal(t, Sort{Column: ColumnBug, Direction: Asc}, st.Sort)
}

func TestSortGroupsByResetsToDescending(t *testing.T) {
	st := Default()
	assert.Equal(t, GroupSort{Column: GroupBySummaryID, Direction: Desc}, st.GroupSort)

	st = st.SortGroupsBy(GroupBySummaryID)
	assert.Equal(t, Asc, st.GroupSort.Direction)

	// Previous column was ascending; a new column still starts descending.
	st = st.SortGroupsBy(GroupByCount)
	assert.Equal(t, GroupSort{Column: GroupByCount, Direction: Desc}, st.GroupSort)

	st = st.SortGroupsBy(GroupByCount).SortGroupsBy(GroupByMostRecent)
	assert.Equal(t, GroupSort{Column: GroupByMostRecent, Direction: Desc}, st.GroupSort)
}

func TestReducersDoNotMutateReceiver(t *testing.T) {
	base := Default().WithPlatforms([]string{"Linux", "Windows"})
	next := base.TogglePlatform("Linux")

	assert.Equal(t, []string{"Linux", "Windows"}, base.Platforms)
	assert.Equal(t, []string{"Windows"}, next.Platforms)

	cleared := base.WithProbeSearch("gc").ClearFilters()
	assert.Nil(t, cleared.Platforms)
	assert.Nil(t, cleared.ProbeTerms)
	assert.Equal(t, []string{"Linux", "Windows"}, base.Platforms)
}

func TestWithPlatformsNormalizes(t *testing.T) {
	st := Default().WithPlatforms([]string{"Windows", "", "Linux", "Windows"})
	assert.Equal(t, []string{"Linux", "Windows"}, st.Platforms)
	assert.True(t, st.HasPlatform("Linux"))
	assert.False(t, st.HasPlatform("Mac"))

	assert.Nil(t, Default().WithPlatforms([]string{""}).Platforms)
}

func TestWithProbeSearch(t *testing.T) {
	st := Default().WithProbeSearch("  GC_ms \t memory  ")
	assert.Equal(t, []string{"gc_ms", "memory"}, st.ProbeTerms)

	assert.Nil(t, Default().WithProbeSearch("   ").ProbeTerms)
}

func TestClearFiltersKeepsModeAndSort(t *testing.T) {
	st := Default().
		WithMode(ModeGrouped).
		WithPlatforms([]string{"Linux"}).
		WithProbeSearch("gc").
		WithDateFrom("2024-01-01").
		WithDateTo("2024-02-01").
		ToggleGroupedWithBugsOnly().
		SortGroupsBy(GroupByCount)

	cleared := st.ClearFilters()
	assert.Equal(t, ModeGrouped, cleared.Mode)
	assert.Equal(t, GroupByCount, cleared.GroupSort.Column)
	assert.Empty(t, cleared.DateFrom)
	assert.Empty(t, cleared.DateTo)
	assert.False(t, cleared.GroupedWithBugsOnly)
}

func TestColumnNames(t *testing.T) {
	for _, c := range Columns {
		parsed, ok := ParseColumn(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}
	for _, c := range GroupColumns {
		parsed, ok := ParseGroupColumn(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}

	assert.Equal(t, KindNumeric, ColumnBug.Kind())
	assert.Equal(t, KindDate, ColumnPushDate.Kind())
	assert.Equal(t, KindText, ColumnPlatform.Kind())
	assert.Equal(t, "", NoColumn.String())

	_, ok := ParseColumn("")
	assert.False(t, ok)
}
