package services

import (
	"testing"

	"tracker/builders"
	"tracker/dto"
	"tracker/errors"
	"tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Daily: []models.ChecklistItem{
			{ID: "d1", Label: "One"}, {ID: "d2", Label: "Two"},
			{ID: "d3", Label: "Three"}, {ID: "d4", Label: "Four"},
		},
		Phases: []models.Phase{
			{ID: "p1", Title: "Phase 1", Items: []models.ChecklistItem{
				{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
			}},
			{ID: "p2", Title: "Phase 2", Items: []models.ChecklistItem{
				{ID: "e"}, {ID: "f"},
			}},
			{ID: "empty", Title: "Coming soon"},
		},
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 75, Percent(3, 4))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 100, Percent(4, 4))
	assert.Equal(t, 0, Percent(0, 0))
}

func TestUpdateVisualsPhasePercent(t *testing.T) {
	phases := []dto.PhaseView{{
		ID: "p1",
		Items: []dto.CheckItemView{
			{Checked: true}, {Checked: false}, {Checked: true}, {Checked: true},
		},
	}}

	total := UpdateVisuals(phases)

	assert.Equal(t, 75, phases[0].Percent)
	assert.Equal(t, "75%", phases[0].PercentText)
	assert.Equal(t, "75%", phases[0].FillWidth)
	assert.Equal(t, 3, total.Checked)
	assert.Equal(t, 4, total.Total)
	assert.Equal(t, "75%", total.Text)
}

func TestUpdateVisualsZeroCheckboxes(t *testing.T) {
	phases := []dto.PhaseView{{ID: "empty"}, {ID: "also-empty"}}

	var total dto.Progress
	assert.NotPanics(t, func() { total = UpdateVisuals(phases) })

	assert.Equal(t, "0%", phases[0].PercentText)
	assert.Equal(t, 0, total.Percent)
	assert.Equal(t, "0%", total.Text)

	assert.Equal(t, "0%", UpdateVisuals(nil).Text)
}

func TestBindMapsPositionsToCatalog(t *testing.T) {
	binder := NewViewBinder(testCatalog())
	doc := builders.NewTrackerBuilder("u1").
		WithDaily(true, false, false, true).
		WithRoadmap(true, false, true, true, false, true).
		WithStreak(4).
		WithLastLogin("2026-10-15").
		Build()

	view := binder.Bind(doc, dto.UserView{ID: "u1", Name: "Alice"}, map[string]bool{"p2": true})

	require.Len(t, view.Daily, 4)
	assert.True(t, view.Daily[0].Checked)
	assert.True(t, view.Daily[3].Checked)
	assert.Equal(t, "d4", view.Daily[3].ID)

	require.Len(t, view.Phases, 3)
	assert.Equal(t, 75, view.Phases[0].Percent)
	assert.False(t, view.Phases[0].Expanded)
	assert.Equal(t, 50, view.Phases[1].Percent)
	assert.True(t, view.Phases[1].Expanded)
	assert.Equal(t, "0%", view.Phases[2].PercentText)

	assert.Equal(t, 4, view.Total.Checked)
	assert.Equal(t, 6, view.Total.Total)
	assert.Equal(t, "67%", view.Total.Text)
	assert.Equal(t, "4", view.StreakText)
	assert.Equal(t, "Alice", view.User.Name)
}

func TestBindShortRoadmapReadsUnchecked(t *testing.T) {
	binder := NewViewBinder(testCatalog())
	doc := builders.NewTrackerBuilder("u1").Build()

	view := binder.Bind(doc, dto.UserView{}, nil)

	for _, phase := range view.Phases {
		for _, item := range phase.Items {
			assert.False(t, item.Checked)
		}
	}
	assert.Equal(t, "0%", view.Total.Text)
	assert.Equal(t, "0", view.StreakText)
}

func TestCollectUsesStableIDs(t *testing.T) {
	binder := NewViewBinder(testCatalog())

	// map order is irrelevant, position comes from the catalog
	daily, roadmap, err := binder.Collect(dto.CheckStateInput{
		Daily:   map[string]bool{"d3": true, "d1": true},
		Roadmap: map[string]bool{"f": true, "a": true, "c": false},
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true, false}, daily)
	assert.Equal(t, []bool{true, false, false, false, false, true}, roadmap)
}

func TestCollectRejectsUnknownIDs(t *testing.T) {
	binder := NewViewBinder(testCatalog())

	_, _, err := binder.Collect(dto.CheckStateInput{
		Daily:   map[string]bool{"d1": true},
		Roadmap: map[string]bool{"zzz": true},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownItem))
	assert.Contains(t, err.Error(), "zzz")

	_, _, err = binder.Collect(dto.CheckStateInput{
		Daily: map[string]bool{"a": true},
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownItem))
}

func TestCollectThenBindRoundTrip(t *testing.T) {
	binder := NewViewBinder(testCatalog())
	daily, roadmap, err := binder.Collect(dto.CheckStateInput{
		Daily:   map[string]bool{"d2": true},
		Roadmap: map[string]bool{"b": true, "e": true},
	})
	require.NoError(t, err)

	doc := builders.NewTrackerBuilder("u1").WithDaily(daily...).WithRoadmap(roadmap...).Build()
	view := binder.Bind(doc, dto.UserView{}, nil)

	assert.True(t, view.Daily[1].Checked)
	assert.True(t, view.Phases[0].Items[1].Checked)
	assert.True(t, view.Phases[1].Items[0].Checked)
	assert.Equal(t, 2, view.Total.Checked)
}

func TestExpandAndHasPhase(t *testing.T) {
	binder := NewViewBinder(testCatalog())

	assert.Equal(t, map[string]bool{"p1": true}, binder.Expand([]string{"p1", "gone"}))
	assert.NoError(t, binder.HasPhase("p2"))
	assert.True(t, errors.HasCode(binder.HasPhase("gone"), errors.ErrCodeUnknownPhase))
}
