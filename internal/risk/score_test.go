package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luki/hazard/internal/sensor"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		in   sensor.Reading
		want Score
	}{
		{"baseline", sensor.Reading{Temperature: 25, GasLevel: 40}, 0},
		{"cold and clean", sensor.Reading{Temperature: 20, GasLevel: 10}, 0},
		{"warm", sensor.Reading{Temperature: 30, GasLevel: 40}, 10},
		{"gas rounds half up", sensor.Reading{Temperature: 25, GasLevel: 41}, 2},
		{"gas whole", sensor.Reading{Temperature: 25, GasLevel: 60}, 30},
		{"smoke only", sensor.Reading{Temperature: 25, GasLevel: 40, Smoke: true}, 30},
		{"motion without guard", sensor.Reading{Temperature: 30, GasLevel: 60, Motion: true}, 40},
		{"motion hot", sensor.Reading{Temperature: 31, GasLevel: 40, Motion: true}, 22},
		{"motion heavy gas", sensor.Reading{Temperature: 25, GasLevel: 61, Motion: true}, 42},
		{"everything clamps", sensor.Reading{Temperature: 35, GasLevel: 80, Smoke: true, Motion: true}, 100},
		{"out of domain high", sensor.Reading{Temperature: 1000, GasLevel: 1000}, 100},
		{"out of domain low", sensor.Reading{Temperature: -40, GasLevel: -10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.in))
		})
	}
}

func TestComputeAlwaysInRange(t *testing.T) {
	for temp := -50; temp <= 150; temp += 5 {
		for gas := -20; gas <= 200; gas += 7 {
			for _, smoke := range []bool{false, true} {
				for _, motion := range []bool{false, true} {
					s := Compute(sensor.Reading{Temperature: temp, GasLevel: gas, Smoke: smoke, Motion: motion})
					if s < MinScore || s > MaxScore {
						t.Fatalf("score %d out of range for temp=%d gas=%d", s, temp, gas)
					}
				}
			}
		}
	}
}

func TestComputeMonotonic(t *testing.T) {
	base := sensor.Reading{Temperature: 26, GasLevel: 41}

	prev := Compute(base)
	for temp := 27; temp <= 80; temp++ {
		r := base
		r.Temperature = temp
		s := Compute(r)
		assert.GreaterOrEqual(t, s, prev, "temperature %d", temp)
		prev = s
	}

	prev = Compute(base)
	for gas := 42; gas <= 120; gas++ {
		r := base
		r.GasLevel = gas
		s := Compute(r)
		assert.GreaterOrEqual(t, s, prev, "gas %d", gas)
		prev = s
	}

	for _, r := range []sensor.Reading{
		{Temperature: 20, GasLevel: 10},
		{Temperature: 35, GasLevel: 30},
		{Temperature: 28, GasLevel: 70},
	} {
		smoky := r
		smoky.Smoke = true
		assert.GreaterOrEqual(t, Compute(smoky), Compute(r))

		moving := r
		moving.Motion = true
		assert.GreaterOrEqual(t, Compute(moving), Compute(r))
	}
}

func TestMotionRequiresGuard(t *testing.T) {
	calm := sensor.Reading{Temperature: 30, GasLevel: 60}
	moving := calm
	moving.Motion = true
	assert.Equal(t, Compute(calm), Compute(moving))

	moving.Temperature = 31
	calm.Temperature = 31
	assert.Equal(t, Compute(calm)+10, Compute(moving))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, MinScore, Clamp(-3))
	assert.Equal(t, Score(57), Clamp(57))
	assert.Equal(t, MaxScore, Clamp(140))
}
