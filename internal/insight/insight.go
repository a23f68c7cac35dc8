// Package insight composes short conversational summaries of current
// location conditions.
package insight

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/llm"
)

const (
	// maxInsightChars bounds the rendered insight; model output is
	// truncated rather than rejected.
	maxInsightChars = 300

	maxTokens = 100

	systemPrompt = "You are GeoSense+, a friendly urban sustainability assistant. " +
		"Answer with a single short sentence, no preamble."

	promptTemplate = `Generate a one-line friendly insight about this location data:
Traffic Level: %d%%
AQI: %d
Time: %s
Context: %s

Provide a helpful, conversational insight like "Traffic is moderate in your zone, AQI is healthy — best time for an evening walk!"`
)

// Conditions are the inputs an insight is composed from.
type Conditions struct {
	TrafficLevel int
	AQI          int
	Context      string
}

// ComposerConfig holds configuration for the insight composer.
type ComposerConfig struct {
	// Generator is the language model. Optional; when nil every insight
	// comes from the deterministic templates.
	Generator llm.Generator

	// Rand drives template selection. A nil value falls back to a source
	// seeded from the wall clock.
	Rand *rand.Rand

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Logger for insight operations.
	Logger zerolog.Logger
}

// Composer produces one-line insights, preferring the language model and
// degrading to canned templates. Compose never fails.
type Composer struct {
	generator llm.Generator
	clock     func() time.Time
	logger    zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer creates a new insight composer.
func NewComposer(cfg ComposerConfig) *Composer {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Composer{
		generator: cfg.Generator,
		clock:     clock,
		logger:    cfg.Logger,
		rng:       rng,
	}
}

// Compose returns a one-line insight for the conditions. A model failure is
// logged and absorbed by the template fallback.
func (c *Composer) Compose(ctx context.Context, cond Conditions) string {
	if c.generator != nil {
		prompt := fmt.Sprintf(promptTemplate, cond.TrafficLevel, cond.AQI, c.clock().Format("15:04"), cond.Context)

		text, err := c.generator.Generate(ctx, systemPrompt, prompt, maxTokens)
		if err == nil && text != "" {
			if len(text) > maxInsightChars {
				// Back up to a rune boundary so the cut never splits a
				// multi-byte character.
				cut := maxInsightChars
				for cut > 0 && !utf8.RuneStart(text[cut]) {
					cut--
				}
				text = strings.TrimSpace(text[:cut])
			}
			return text
		}
		if err != nil {
			c.logger.Warn().Err(err).Msg("insight generation failed, using template")
		}
	}

	return c.template(cond)
}

// template renders one of three canned insights from the conditions.
func (c *Composer) template(cond Conditions) string {
	traffic := cond.TrafficLevel
	aqi := cond.AQI

	trafficWord := "heavy"
	switch {
	case traffic < 40:
		trafficWord = "light"
	case traffic < 70:
		trafficWord = "moderate"
	}

	busyWord := "quite busy"
	switch {
	case traffic < 40:
		busyWord = "quiet"
	case traffic < 70:
		busyWord = "moderately busy"
	}

	aqiWord := "moderate"
	airWord := "fair"
	if aqi < 100 {
		aqiWord = "healthy"
		airWord = "good"
	}

	suggestion := "consider eco-friendly routes"
	if traffic < 40 {
		suggestion = "best time for an evening walk"
	}

	activity := "Indoor activities recommended"
	if traffic < 40 && aqi < 100 {
		activity = "Perfect for outdoor activities"
	}

	rideTip := "Consider using public transport"
	if traffic < 50 && aqi < 100 {
		rideTip = "Great conditions for a bike ride"
	}

	insights := []string{
		fmt.Sprintf("Traffic is %s in your zone, AQI is %s — %s!", trafficWord, aqiWord, suggestion),
		fmt.Sprintf("Your area is %s right now. Air quality is %s. %s.", busyWord, airWord, activity),
		fmt.Sprintf("Current conditions: %d%% traffic, AQI %d. %s!", traffic, aqi, rideTip),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return insights[c.rng.Intn(len(insights))]
}
