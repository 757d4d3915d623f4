// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package prometheus

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	nodesStoredCounter  prometheus.Counter
	nodesFetchedCounter prometheus.Counter
}

func New() (metrics *Metrics, err error) {
	metrics = new(Metrics)
	err = metrics.setupDefaults()
	if err != nil {
		return metrics, err
	}

	return metrics, nil
}

func (m *Metrics) setupDefaults() (err error) {
	collectorsToRegister := map[string]prometheus.Collector{}
	if m.nodesStoredCounter == nil {
		m.nodesStoredCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mkvs_storage",
			Name:      "nodes_stored_total",
			Help:      "total number of trie nodes written to the content addressed store",
		})
		collectorsToRegister["nodes stored"] = m.nodesStoredCounter
	}

	if m.nodesFetchedCounter == nil {
		m.nodesFetchedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mkvs_storage",
			Name:      "nodes_fetched_total",
			Help:      "total number of trie nodes read from the content addressed store",
		})
		collectorsToRegister["nodes fetched"] = m.nodesFetchedCounter
	}

	for collectorName, collectorToRegister := range collectorsToRegister {
		err = prometheus.Register(collectorToRegister)
		if err != nil && !errors.As(err, &prometheus.AlreadyRegisteredError{}) {
			return fmt.Errorf("cannot register %s counter: %w", collectorName, err)
		}
	}

	return nil
}

func (m *Metrics) NodesStored(n uint32) {
	m.nodesStoredCounter.Add(float64(n))
}

func (m *Metrics) NodesFetched(n uint32) {
	m.nodesFetchedCounter.Add(float64(n))
}
