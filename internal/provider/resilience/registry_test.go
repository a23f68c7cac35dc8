package resilience_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosense/geosense/internal/provider/resilience"
)

func TestRegistry_TracksHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.SingleAttemptConfig("tomtom-search", time.Second))

	registry.Register("tomtom-search", client)

	health := registry.GetHealth("tomtom-search")
	require.NotNil(t, health)
	assert.True(t, health.IsHealthy())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	registry.RecordSuccess("tomtom-search")
	registry.RecordFailure("tomtom-search", errors.New("timeout"))

	health = registry.GetHealth("tomtom-search")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "timeout", health.LastError)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()
	assert.Nil(t, registry.GetHealth("nope"))
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("a", resilience.NewClient(resilience.SingleAttemptConfig("a", time.Second)))
	registry.Register("b", resilience.NewClient(resilience.SingleAttemptConfig("b", time.Second)))

	all := registry.GetAllHealth()
	assert.Len(t, all, 2)

	registry.Unregister("a")
	assert.Len(t, registry.GetAllHealth(), 1)
}
