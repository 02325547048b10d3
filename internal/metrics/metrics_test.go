package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	AuthzDecisions.WithLabelValues("allow", "self").Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() != "pawmart_authz_decisions_total" {
			continue
		}
		found = true
		require.NotEmpty(t, f.GetMetric())
		assert.GreaterOrEqual(t, f.GetMetric()[0].GetCounter().GetValue(), 1.0)
	}
	assert.True(t, found)
}
