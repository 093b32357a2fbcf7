package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleDelta_String(t *testing.T) {
	assert.Equal(t, "new at #1: Data Engineer", NewAddedDelta("Data Engineer", 1).String())
	assert.Equal(t, "gone from #2: Data Analyst", NewRemovedDelta("Data Analyst", 2).String())
	assert.Equal(t, "moved #1 -> #3: Data Scientist", NewMovedDelta("Data Scientist", 1, 3).String())
}

func TestCountChange_SignedDelta(t *testing.T) {
	assert.Equal(t, 4, CountChange{Outcome: CountIncreased, Delta: 4}.SignedDelta())
	assert.Equal(t, -2, CountChange{Outcome: CountDecreased, Delta: 2}.SignedDelta())
	assert.Equal(t, 0, CountChange{Outcome: CountUnchanged}.SignedDelta())
	assert.Equal(t, 0, CountChange{Outcome: CountFirstObservation}.SignedDelta())
}

func TestSnapshot_Clone_Independent(t *testing.T) {
	counts := CountSnapshot{"a": 1}
	titles := TitleSnapshot{"a": {"X", "Y"}}

	countsCopy := counts.Clone()
	titlesCopy := titles.Clone()

	countsCopy["a"] = 99
	titlesCopy["a"][0] = "Z"

	assert.Equal(t, 1, counts["a"])
	assert.Equal(t, "X", titles["a"][0])
}
