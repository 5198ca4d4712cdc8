package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/hazard/internal/sensor"
)

func TestClassifyBoundaries(t *testing.T) {
	assert.Equal(t, Safe, Classify(0))
	assert.Equal(t, Safe, Classify(39))
	assert.Equal(t, Warning, Classify(40))
	assert.Equal(t, Warning, Classify(69))
	assert.Equal(t, Danger, Classify(70))
	assert.Equal(t, Danger, Classify(100))
}

func TestClassifyPartition(t *testing.T) {
	counts := map[Level]int{}
	prev := Safe
	for s := MinScore; s <= MaxScore; s++ {
		l := Classify(s)
		require.GreaterOrEqual(t, l, prev, "bands must not go backwards at %d", s)
		counts[l]++
		prev = l
	}
	assert.Equal(t, 40, counts[Safe])
	assert.Equal(t, 30, counts[Warning])
	assert.Equal(t, 31, counts[Danger])
}

func TestClassifyStable(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Warning, Classify(55))
	}
}

func TestEvaluate(t *testing.T) {
	s, l := Evaluate(sensor.Reading{Temperature: 25, GasLevel: 40})
	assert.Equal(t, Score(0), s)
	assert.Equal(t, Safe, l)

	s, l = Evaluate(sensor.Reading{Temperature: 35, GasLevel: 80, Smoke: true, Motion: true})
	assert.Equal(t, Score(100), s)
	assert.Equal(t, Danger, l)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "safe", Safe.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "danger", Danger.String())
	assert.Equal(t, "DANGER", Danger.Title())
}
