package insight_test

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/geosense/geosense/internal/insight"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _, _ string, _ int) (string, error) {
	s.calls++
	return s.text, s.err
}

func newComposer(gen *stubGenerator, seed int64) *insight.Composer {
	cfg := insight.ComposerConfig{
		Rand:   rand.New(rand.NewSource(seed)),
		Clock:  func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) },
		Logger: zerolog.New(io.Discard),
	}
	if gen != nil {
		cfg.Generator = gen
	}
	return insight.NewComposer(cfg)
}

func TestCompose_UsesGenerator(t *testing.T) {
	gen := &stubGenerator{text: "Traffic is light, enjoy the ride!"}
	c := newComposer(gen, 1)

	got := c.Compose(context.Background(), insight.Conditions{TrafficLevel: 30, AQI: 80})
	assert.Equal(t, "Traffic is light, enjoy the ride!", got)
	assert.Equal(t, 1, gen.calls)
}

func TestCompose_TruncatesLongModelOutput(t *testing.T) {
	gen := &stubGenerator{text: strings.Repeat("a", 500)}
	c := newComposer(gen, 1)

	got := c.Compose(context.Background(), insight.Conditions{TrafficLevel: 30, AQI: 80})
	assert.LessOrEqual(t, len(got), 300)
}

func TestCompose_TruncationKeepsRuneBoundaries(t *testing.T) {
	// Byte 300 lands inside a three-byte rune; the cut must back up to the
	// previous boundary.
	gen := &stubGenerator{text: strings.Repeat("a", 299) + strings.Repeat("→", 10)}
	c := newComposer(gen, 1)

	got := c.Compose(context.Background(), insight.Conditions{TrafficLevel: 30, AQI: 80})
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 300)
	assert.Equal(t, strings.Repeat("a", 299), got)
}

func TestCompose_FallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: assert.AnError}
	c := newComposer(gen, 1)

	got := c.Compose(context.Background(), insight.Conditions{TrafficLevel: 30, AQI: 80})
	assert.NotEmpty(t, got)
}

func TestCompose_NoGeneratorNeverFails(t *testing.T) {
	c := newComposer(nil, 1)

	for i := 0; i < 50; i++ {
		got := c.Compose(context.Background(), insight.Conditions{TrafficLevel: i * 2, AQI: 60 + i})
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), 300)
	}
}

func TestCompose_TemplateBranches(t *testing.T) {
	cases := []struct {
		name    string
		cond    insight.Conditions
		seed    int64
		wantSub []string
	}{
		{
			name:    "light traffic healthy air",
			cond:    insight.Conditions{TrafficLevel: 20, AQI: 70},
			wantSub: []string{"light", "moderate", "quiet", "good", "20", "70"},
		},
		{
			name:    "heavy traffic poor air",
			cond:    insight.Conditions{TrafficLevel: 90, AQI: 130},
			wantSub: []string{"heavy", "quite busy", "fair", "90", "130"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen := false
			// Sample enough draws to hit each template at least once.
			for seed := int64(0); seed < 10; seed++ {
				got := newComposer(nil, seed).Compose(context.Background(), tc.cond)
				for _, sub := range tc.wantSub {
					if strings.Contains(got, sub) {
						seen = true
					}
				}
			}
			assert.True(t, seen)
		})
	}
}
