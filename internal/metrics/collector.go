// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/autobrr/tqui/internal/panel"
	"github.com/autobrr/tqui/internal/poller"
	"github.com/autobrr/tqui/internal/torrents"
)

// SnapshotSource exposes the poller state the collector reads. Collection
// never issues backend requests of its own; it only reports the last
// polled snapshot.
type SnapshotSource interface {
	Last() poller.Snapshot
	Counters() (polls, pollErrors uint64)
}

type TorrentCollector struct {
	source SnapshotSource

	torrentsTotalDesc       *prometheus.Desc
	torrentsDownloadingDesc *prometheus.Desc
	torrentsSeedingDesc     *prometheus.Desc
	torrentsPausedDesc      *prometheus.Desc
	torrentsErrorDesc       *prometheus.Desc
	torrentsCheckingDesc    *prometheus.Desc
	lastPollDesc            *prometheus.Desc
	pollsTotalDesc          *prometheus.Desc
	pollErrorsTotalDesc     *prometheus.Desc
}

func NewTorrentCollector(source SnapshotSource) *TorrentCollector {
	return &TorrentCollector{
		source: source,

		torrentsTotalDesc: prometheus.NewDesc(
			"tqui_torrents_total",
			"Number of torrents in the last snapshot by server",
			[]string{"server"},
			nil,
		),
		torrentsDownloadingDesc: prometheus.NewDesc(
			"tqui_torrents_downloading",
			"Number of downloading torrents by server",
			[]string{"server"},
			nil,
		),
		torrentsSeedingDesc: prometheus.NewDesc(
			"tqui_torrents_seeding",
			"Number of seeding torrents by server",
			[]string{"server"},
			nil,
		),
		torrentsPausedDesc: prometheus.NewDesc(
			"tqui_torrents_paused",
			"Number of paused torrents by server",
			[]string{"server"},
			nil,
		),
		torrentsErrorDesc: prometheus.NewDesc(
			"tqui_torrents_error",
			"Number of torrents in error state by server",
			[]string{"server"},
			nil,
		),
		torrentsCheckingDesc: prometheus.NewDesc(
			"tqui_torrents_checking",
			"Number of torrents being checked by server",
			[]string{"server"},
			nil,
		),
		lastPollDesc: prometheus.NewDesc(
			"tqui_last_poll_timestamp_seconds",
			"Unix time of the last successful torrent poll",
			nil,
			nil,
		),
		pollsTotalDesc: prometheus.NewDesc(
			"tqui_polls_total",
			"Total number of backend polls issued",
			nil,
			nil,
		),
		pollErrorsTotalDesc: prometheus.NewDesc(
			"tqui_poll_errors_total",
			"Total number of backend polls that failed",
			nil,
			nil,
		),
	}
}

func (c *TorrentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.torrentsTotalDesc
	ch <- c.torrentsDownloadingDesc
	ch <- c.torrentsSeedingDesc
	ch <- c.torrentsPausedDesc
	ch <- c.torrentsErrorDesc
	ch <- c.torrentsCheckingDesc
	ch <- c.lastPollDesc
	ch <- c.pollsTotalDesc
	ch <- c.pollErrorsTotalDesc
}

func (c *TorrentCollector) Collect(ch chan<- prometheus.Metric) {
	polls, pollErrors := c.source.Counters()
	ch <- prometheus.MustNewConstMetric(c.pollsTotalDesc, prometheus.CounterValue, float64(polls))
	ch <- prometheus.MustNewConstMetric(c.pollErrorsTotalDesc, prometheus.CounterValue, float64(pollErrors))

	snapshot := c.source.Last()
	if !snapshot.Polled.IsZero() {
		ch <- prometheus.MustNewConstMetric(
			c.lastPollDesc,
			prometheus.GaugeValue,
			float64(snapshot.Polled.Unix()),
		)
	}

	for server, list := range byServer(snapshot.Torrents) {
		stats := torrents.CalculateStats(list)

		ch <- prometheus.MustNewConstMetric(c.torrentsTotalDesc, prometheus.GaugeValue, float64(stats.Total), server)
		ch <- prometheus.MustNewConstMetric(c.torrentsDownloadingDesc, prometheus.GaugeValue, float64(stats.Downloading), server)
		ch <- prometheus.MustNewConstMetric(c.torrentsSeedingDesc, prometheus.GaugeValue, float64(stats.Seeding), server)
		ch <- prometheus.MustNewConstMetric(c.torrentsPausedDesc, prometheus.GaugeValue, float64(stats.Paused), server)
		ch <- prometheus.MustNewConstMetric(c.torrentsErrorDesc, prometheus.GaugeValue, float64(stats.Error), server)
		ch <- prometheus.MustNewConstMetric(c.torrentsCheckingDesc, prometheus.GaugeValue, float64(stats.Checking), server)
	}
}

func byServer(list []panel.Torrent) map[string][]panel.Torrent {
	grouped := make(map[string][]panel.Torrent)
	for _, t := range list {
		grouped[t.Server] = append(grouped[t.Server], t)
	}
	return grouped
}
