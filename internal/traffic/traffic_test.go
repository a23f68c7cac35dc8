package traffic_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geosense/geosense/internal/traffic"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
}

func TestEstimate_AllHoursCovered(t *testing.T) {
	e := traffic.NewEstimator(rand.New(rand.NewSource(1)))

	for hour := 0; hour < 24; hour++ {
		t.Run(fmt.Sprintf("hour_%02d", hour), func(t *testing.T) {
			p := e.Estimate(at(hour))

			switch {
			case hour >= 7 && hour <= 9:
				assert.Equal(t, "Peak morning traffic - Busiest between 7-9 AM", p.Pattern)
				assert.Equal(t, "7-9 AM", p.BusyHours)
				assert.GreaterOrEqual(t, p.Level, 70)
				assert.LessOrEqual(t, p.Level, 95)
			case hour >= 17 && hour <= 20:
				assert.Equal(t, "Peak evening rush - Busiest between 6-8 PM", p.Pattern)
				assert.Equal(t, "6-8 PM", p.BusyHours)
				assert.GreaterOrEqual(t, p.Level, 75)
				assert.LessOrEqual(t, p.Level, 100)
			case hour >= 22 || hour <= 6:
				assert.Equal(t, "Quiet zone - Perfect for evening walks", p.Pattern)
				assert.Equal(t, "Low traffic", p.BusyHours)
				assert.GreaterOrEqual(t, p.Level, 10)
				assert.LessOrEqual(t, p.Level, 30)
			default:
				assert.Equal(t, "Moderate traffic - Good time for errands", p.Pattern)
				assert.Equal(t, "Low traffic", p.BusyHours)
				assert.GreaterOrEqual(t, p.Level, 40)
				assert.LessOrEqual(t, p.Level, 65)
			}
		})
	}
}

func TestEstimate_NightWrapsAroundMidnight(t *testing.T) {
	e := traffic.NewEstimator(rand.New(rand.NewSource(7)))

	for _, hour := range []int{22, 23, 0, 1, 5, 6} {
		p := e.Estimate(at(hour))
		assert.Equal(t, "Quiet zone - Perfect for evening walks", p.Pattern, "hour %d", hour)
	}
}

func TestEstimate_LevelsStayInRange(t *testing.T) {
	e := traffic.NewEstimator(rand.New(rand.NewSource(99)))

	for i := 0; i < 200; i++ {
		p := e.Estimate(at(8))
		assert.GreaterOrEqual(t, p.Level, 70)
		assert.LessOrEqual(t, p.Level, 95)
	}
}

func TestNewEstimator_NilSource(t *testing.T) {
	e := traffic.NewEstimator(nil)
	p := e.Estimate(at(12))
	assert.NotEmpty(t, p.Pattern)
}
