package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusArchived, true},
		{StatusCompleted, StatusInProgress, true},
		{StatusArchived, StatusCompleted, true},
		{StatusInProgress, StatusArchived, false},
		{StatusArchived, StatusInProgress, false},
		{StatusInProgress, StatusInProgress, true},
		{StatusArchived, StatusArchived, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ValidTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusArchived))
	assert.False(t, ValidStatus("Pendente"))
	assert.False(t, ValidStatus(""))
}
