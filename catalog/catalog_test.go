package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"tracker/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Daily, 4)
	assert.Len(t, c.Phases, 4)
	assert.Equal(t, 14, c.RoadmapSize())

	phase, ok := c.PhaseByID("backend")
	require.True(t, ok)
	assert.Equal(t, "Phase 2: Backend", phase.Title)

	_, ok = c.PhaseByID("nope")
	assert.False(t, ok)
}

func TestParseRejectsWrongDailyCount(t *testing.T) {
	_, err := Parse([]byte(`
daily:
  - id: a
    label: A
phases: []
`))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`
daily:
  - {id: a, label: A}
  - {id: b, label: B}
  - {id: c, label: C}
  - {id: d, label: D}
phases:
  - id: p1
    title: One
    items:
      - {id: a, label: again}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
}

func TestParseRejectsPhaseWithoutTitle(t *testing.T) {
	_, err := Parse([]byte(`
daily:
  - {id: a, label: A}
  - {id: b, label: B}
  - {id: c, label: C}
  - {id: d, label: D}
phases:
  - id: p1
    items: []
`))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
daily:
  - {id: a, label: A}
  - {id: b, label: B}
  - {id: c, label: C}
  - {id: d, label: D}
phases:
  - id: empty
    title: Nothing yet
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.RoadmapSize())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
