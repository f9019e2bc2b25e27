package jobfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/models"
)

func TestGenerate_DeterministicPerDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	g := NewGenerator(42)

	first := g.Generate(25, day)
	second := g.Generate(25, day.Add(3*time.Hour))
	require.Len(t, first, 25)
	require.Len(t, second, 25)

	for i := range first {
		assert.Equal(t, first[i].ExternalID, second[i].ExternalID)
		assert.Equal(t, first[i].Title, second[i].Title)
	}

	nextDay := g.Generate(25, day.AddDate(0, 0, 1))
	assert.NotEqual(t, first[0].ExternalID, nextDay[0].ExternalID)
}

func TestGenerate_ListingsAreValid(t *testing.T) {
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	jobs := NewGenerator(7).Generate(200, day)

	seen := map[string]bool{}
	for _, j := range jobs {
		assert.False(t, seen[j.ExternalID], "duplicate external id %s", j.ExternalID)
		seen[j.ExternalID] = true

		assert.NotEmpty(t, j.Title)
		assert.NotEmpty(t, j.Institution)
		assert.Contains(t, []models.JobSector{models.JobSectorPublic, models.JobSectorPrivate}, j.Sector)
		assert.True(t, j.IsActive)
		require.NotNil(t, j.Deadline)

		days := int(j.Deadline.Sub(day).Hours() / 24)
		assert.GreaterOrEqual(t, days, 7)
		assert.LessOrEqual(t, days, 45)
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	assert.Empty(t, NewGenerator(1).Generate(0, time.Now()))
}
