// Package chat answers user messages as the GeoSense+ eco-assistant.
package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/llm"
)

const (
	maxTokens = 150

	systemPrompt = "You are GeoSense+, a friendly eco-assistant for a location intelligence app. " +
		"You help users find clean routes, understand air quality, and earn eco-points. " +
		"Keep replies short, upbeat and practical."

	greeting = "I'm GeoSense+, your eco-assistant! Ask me about clean routes, air quality, or earning eco-points."

	fallbackReply = "I'm here to help with eco-routes, air quality insights, or your green score. How can I assist?"
)

// rule maps trigger keywords to a canned reply. Rules are checked in order;
// the first keyword hit wins.
type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{
		keywords: []string{"route", "walk", "bike", "path"},
		reply:    "I can guide you to cleaner routes! Try exploring eco-friendly paths during off-peak hours to save emissions.",
	},
	{
		keywords: []string{"eco", "carbon", "green score", "points"},
		reply:    "Eco-points come from choosing sustainable travel. Every eco-route boosts your green score and saves CO₂!",
	},
	{
		keywords: []string{"air", "aqi", "pollution", "quality"},
		reply:    "Local AQI is usually best early mornings after rainfall. Consider parks or riverside areas for the cleanest air!",
	},
	{
		keywords: []string{"traffic", "congestion", "rush"},
		reply:    "Traffic peaks around 8 AM and 6 PM. Shifting your commute by 20 minutes can lower delays and emissions.",
	},
	{
		keywords: []string{"mad", "angry"},
		reply:    "I'm never mad—just motivated to help you find greener journeys!",
	},
}

// ResponderConfig holds configuration for the chat responder.
type ResponderConfig struct {
	// Generator is the language model. Optional; when nil every reply
	// comes from the keyword rules.
	Generator llm.Generator

	// Logger for chat operations.
	Logger zerolog.Logger
}

// Responder answers chat messages, preferring the language model and
// degrading to keyword rules. Reply never fails.
type Responder struct {
	generator llm.Generator
	logger    zerolog.Logger
}

// NewResponder creates a new chat responder.
func NewResponder(cfg ResponderConfig) *Responder {
	return &Responder{
		generator: cfg.Generator,
		logger:    cfg.Logger,
	}
}

// Reply answers a user message. An empty message gets the greeting without
// touching the model; a model failure is logged and absorbed by the rules.
func (r *Responder) Reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return greeting
	}

	if r.generator != nil {
		text, err := r.generator.Generate(ctx, systemPrompt, message, maxTokens)
		if err == nil && text != "" {
			return text
		}
		if err != nil {
			r.logger.Warn().Err(err).Msg("chat generation failed, using rules")
		}
	}

	return ruleReply(message)
}

// ruleReply matches the message against the keyword rules in order.
func ruleReply(message string) string {
	lower := strings.ToLower(message)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}

	return fallbackReply
}
