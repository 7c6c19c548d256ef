// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/tqui/internal/panel"
	"github.com/autobrr/tqui/internal/poller"
)

type stubSource struct {
	snapshot   poller.Snapshot
	polls      uint64
	pollErrors uint64
}

func (s *stubSource) Last() poller.Snapshot {
	return s.snapshot
}

func (s *stubSource) Counters() (uint64, uint64) {
	return s.polls, s.pollErrors
}

func TestNewManager(t *testing.T) {
	manager := NewManager(&stubSource{})

	assert.NotNil(t, manager)
	assert.NotNil(t, manager.registry)
	assert.NotNil(t, manager.collector)
}

func TestManager_RegistryIsolation(t *testing.T) {
	manager1 := NewManager(&stubSource{})
	manager2 := NewManager(&stubSource{})

	assert.NotSame(t, manager1.registry, manager2.registry, "Each manager should have its own registry")
}

func TestTorrentCollector_Describe(t *testing.T) {
	collector := NewTorrentCollector(&stubSource{})

	descChan := make(chan *prometheus.Desc, 20)
	collector.Describe(descChan)
	close(descChan)

	var descs []*prometheus.Desc
	for desc := range descChan {
		descs = append(descs, desc)
	}

	assert.Len(t, descs, 9, "Should have 9 metric descriptors")
}

func TestTorrentCollector_CollectEmptySnapshot(t *testing.T) {
	collector := NewTorrentCollector(&stubSource{})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	// Only the poll counters exist before the first successful poll.
	metricCount := testutil.CollectAndCount(registry)
	assert.Equal(t, 2, metricCount)
}

func TestTorrentCollector_CollectPerServerGauges(t *testing.T) {
	source := &stubSource{
		snapshot: poller.Snapshot{
			Torrents: []panel.Torrent{
				{Server: "home", State: panel.TorrentStateDownloading},
				{Server: "home", State: panel.TorrentStateUploading},
				{Server: "seedbox", State: panel.TorrentStatePausedUp},
			},
			Polled: time.Now(),
		},
		polls:      10,
		pollErrors: 2,
	}
	manager := NewManager(source)

	// 2 counters + last-poll gauge + 6 gauges per server.
	metricCount := testutil.CollectAndCount(manager.GetRegistry())
	assert.Equal(t, 15, metricCount)
}

func TestHandlerServesMetricsAndHealth(t *testing.T) {
	source := &stubSource{
		snapshot: poller.Snapshot{
			Torrents: []panel.Torrent{{Server: "home", State: panel.TorrentStateDownloading}},
			Polled:   time.Now(),
		},
		polls: 1,
	}
	manager := NewManager(source)

	srv := httptest.NewServer(manager.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tqui_polls_total")
	assert.Contains(t, string(body), `tqui_torrents_downloading{server="home"}`)

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
