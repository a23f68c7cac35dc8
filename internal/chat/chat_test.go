package chat_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/geosense/geosense/internal/chat"
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

func newResponder(gen *stubGenerator) *chat.Responder {
	cfg := chat.ResponderConfig{Logger: zerolog.New(io.Discard)}
	if gen != nil {
		cfg.Generator = gen
	}
	return chat.NewResponder(cfg)
}

func TestReply_EmptyMessageGreetsWithoutModel(t *testing.T) {
	gen := &stubGenerator{text: "should not be used"}
	r := newResponder(gen)

	for _, msg := range []string{"", "   ", "\n"} {
		got := r.Reply(context.Background(), msg)
		assert.Equal(t, "I'm GeoSense+, your eco-assistant! Ask me about clean routes, air quality, or earning eco-points.", got)
	}
	assert.Zero(t, gen.calls)
}

func TestReply_UsesGenerator(t *testing.T) {
	gen := &stubGenerator{text: "Take the riverside path, AQI is great today!"}
	r := newResponder(gen)

	got := r.Reply(context.Background(), "best route to work?")
	assert.Equal(t, "Take the riverside path, AQI is great today!", got)
	assert.Equal(t, 1, gen.calls)
}

func TestReply_RulesOnGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: assert.AnError}
	r := newResponder(gen)

	got := r.Reply(context.Background(), "which route should I take?")
	assert.Contains(t, got, "cleaner routes")
}

func TestReply_KeywordRules(t *testing.T) {
	r := newResponder(nil)

	cases := []struct {
		message string
		want    string
	}{
		{"Suggest a good walk nearby", "I can guide you to cleaner routes! Try exploring eco-friendly paths during off-peak hours to save emissions."},
		{"How do I earn points?", "Eco-points come from choosing sustainable travel. Every eco-route boosts your green score and saves CO₂!"},
		{"What is the AQI today?", "Local AQI is usually best early mornings after rainfall. Consider parks or riverside areas for the cleanest air!"},
		{"When is rush hour?", "Traffic peaks around 8 AM and 6 PM. Shifting your commute by 20 minutes can lower delays and emissions."},
		{"are you mad at me", "I'm never mad—just motivated to help you find greener journeys!"},
		{"tell me a joke", "I'm here to help with eco-routes, air quality insights, or your green score. How can I assist?"},
	}

	for _, tc := range cases {
		got := r.Reply(context.Background(), tc.message)
		assert.Equal(t, tc.want, got, "message: %q", tc.message)
	}
}

func TestReply_FirstMatchWins(t *testing.T) {
	r := newResponder(nil)

	// "bike" (routes rule) appears before "points" (eco rule) in rule order.
	got := r.Reply(context.Background(), "do I get points for a bike ride?")
	assert.Contains(t, got, "cleaner routes")
}

func TestReply_CaseInsensitive(t *testing.T) {
	r := newResponder(nil)

	got := r.Reply(context.Background(), "TRAFFIC???")
	assert.Contains(t, got, "Traffic peaks")
}
