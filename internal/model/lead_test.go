package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasContact(t *testing.T) {
	assert.False(t, (&Lead{}).HasContact())
	assert.True(t, (&Lead{Phone: "9876543210"}).HasContact())
	assert.True(t, (&Lead{Email: "x@y.in"}).HasContact())
}

func TestHotness_PartialScores(t *testing.T) {
	speed := 30
	// A missing score counts as 100, so one known score still ranks the lead.
	assert.Equal(t, 130, (&Lead{SpeedScore: &speed}).Hotness())
}
