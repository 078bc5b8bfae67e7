package pipeline

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersCollectorsOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1 := newMetrics(reg)
	require.NotNil(t, m1)

	// A second Pipeline constructed against the same registry must reuse
	// the already-registered collectors instead of panicking.
	assert.NotPanics(t, func() {
		m2 := newMetrics(reg)
		assert.Same(t, m1.framesProcessed, m2.framesProcessed)
	})
}
