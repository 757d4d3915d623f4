// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	err := counter.Write(&metric)
	require.NoError(t, err)
	return metric.GetCounter().GetValue()
}

func Test_New(t *testing.T) {
	t.Parallel()

	metrics, err := New()
	require.NoError(t, err)

	require.NotNil(t, metrics.nodesStoredCounter)
	require.NotNil(t, metrics.nodesFetchedCounter)

	// registering the same counters a second time is tolerated
	_, err = New()
	require.NoError(t, err)
}

func Test_Metrics_NodesStored(t *testing.T) {
	t.Parallel()

	metrics, err := New()
	require.NoError(t, err)

	metrics.NodesStored(2)
	metrics.NodesStored(3)

	assert.Equal(t, float64(5), counterValue(t, metrics.nodesStoredCounter))
	assert.Equal(t, float64(0), counterValue(t, metrics.nodesFetchedCounter))
}

func Test_Metrics_NodesFetched(t *testing.T) {
	t.Parallel()

	metrics, err := New()
	require.NoError(t, err)

	metrics.NodesFetched(4)

	assert.Equal(t, float64(4), counterValue(t, metrics.nodesFetchedCounter))
}
