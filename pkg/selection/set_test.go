package selection

import (
	"slices"
	"testing"

	"github.com/grovetools/spoolview/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := NewSet("S2", "S1", "S2")
	assert.Equal(t, []models.GroupID{"S2", "S1"}, s.Items())

	assert.False(t, s.Add("S1"))
	assert.True(t, s.Add("S3"))
	assert.True(t, s.Remove("S2"))
	assert.False(t, s.Remove("S2"))
	assert.True(t, s.Add("S2"))

	assert.Equal(t, []models.GroupID{"S1", "S3", "S2"}, slices.Collect(s.All()))
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("S3"))
	assert.False(t, s.Contains("S9"))
}

func TestSetItemsIsACopy(t *testing.T) {
	s := NewSet("S1")
	items := s.Items()
	items[0] = "changed"
	assert.Equal(t, []models.GroupID{"S1"}, s.Items())
}
