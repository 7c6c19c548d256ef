// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package poller drives the panel's refresh loop: torrents on a short
// interval, categories on a longer one. Every successful poll replaces
// the previous collections in full; there is no partial merge and no
// retry. Consumers receive whole snapshots and the last one received
// wins.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/tqui/internal/panel"
)

const detailCacheTTL = 30 * time.Second

// Source is the slice of the panel client the poller consumes.
type Source interface {
	Torrents(ctx context.Context, categories, servers []string) ([]panel.Torrent, error)
	Categories(ctx context.Context) ([]panel.Category, error)
	Torrent(ctx context.Context, hash string) (*panel.Torrent, error)
}

// Snapshot is one coherent view of the panel's data. Torrents and
// Categories are replaced wholesale on every emission; Err carries the
// most recent poll failure, with the collections left at their last good
// values so the view never goes blank on a failed refresh.
type Snapshot struct {
	Torrents   []panel.Torrent
	Categories []panel.Category
	Polled     time.Time
	Err        error
}

// Poller owns the refresh cadence and the on-demand torrent detail
// cache.
type Poller struct {
	source           Source
	torrentInterval  time.Duration
	categoryInterval time.Duration

	updates   chan Snapshot
	kick      chan struct{}
	intervals chan [2]time.Duration

	mu         sync.Mutex
	categories []string
	last       Snapshot
	polls      uint64
	pollErrors uint64

	detailCache *ristretto.Cache
}

// New builds a poller over source with the given intervals.
func New(source Source, torrentInterval, categoryInterval time.Duration) (*Poller, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24, // 16MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create detail cache")
	}

	return &Poller{
		source:           source,
		torrentInterval:  torrentInterval,
		categoryInterval: categoryInterval,
		updates:          make(chan Snapshot, 1),
		kick:             make(chan struct{}, 1),
		intervals:        make(chan [2]time.Duration, 1),
		detailCache:      cache,
	}, nil
}

// Updates returns the snapshot channel. The channel holds at most one
// pending snapshot; a consumer that falls behind sees only the newest.
func (p *Poller) Updates() <-chan Snapshot {
	return p.updates
}

// SetCategories changes the server-side category filter and kicks an
// immediate re-poll instead of waiting out the current interval.
func (p *Poller) SetCategories(categories []string) {
	p.mu.Lock()
	p.categories = categories
	p.mu.Unlock()

	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// SetIntervals changes the poll cadence at runtime, used when the config
// file is edited while running. Zero or negative values keep the current
// interval.
func (p *Poller) SetIntervals(torrent, category time.Duration) {
	p.mu.Lock()
	if torrent <= 0 {
		torrent = p.torrentInterval
	}
	if category <= 0 {
		category = p.categoryInterval
	}
	p.mu.Unlock()
	select {
	case p.intervals <- [2]time.Duration{torrent, category}:
	default:
	}
}

// Kick requests an immediate torrent re-poll, used after mutations so
// their effect shows up without waiting for the next tick.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. Polls execute on this goroutine, so
// a request still in flight when its tick fires simply delays the next
// poll; ticks that pass while busy are dropped, not queued.
func (p *Poller) Run(ctx context.Context) {
	torrentTicker := time.NewTicker(p.torrentInterval)
	defer torrentTicker.Stop()
	categoryTicker := time.NewTicker(p.categoryInterval)
	defer categoryTicker.Stop()

	p.pollCategories(ctx)
	p.pollTorrents(ctx)

	for {
		select {
		case <-ctx.Done():
			p.detailCache.Close()
			return
		case iv := <-p.intervals:
			p.mu.Lock()
			p.torrentInterval, p.categoryInterval = iv[0], iv[1]
			p.mu.Unlock()
			torrentTicker.Reset(iv[0])
			categoryTicker.Reset(iv[1])
			log.Debug().Dur("torrent", iv[0]).Dur("category", iv[1]).Msg("poll intervals updated")
		case <-p.kick:
			p.pollTorrents(ctx)
		case <-torrentTicker.C:
			p.pollTorrents(ctx)
		case <-categoryTicker.C:
			p.pollCategories(ctx)
		}
	}
}

func (p *Poller) pollTorrents(ctx context.Context) {
	p.mu.Lock()
	categories := p.categories
	p.mu.Unlock()

	torrents, err := p.source.Torrents(ctx, categories, nil)

	p.mu.Lock()
	p.polls++
	if err != nil {
		log.Debug().Err(err).Msg("torrent poll failed, keeping last snapshot")
		p.pollErrors++
		p.last.Err = err
	} else {
		p.last.Torrents = torrents
		p.last.Polled = time.Now()
		p.last.Err = nil
	}
	snapshot := p.last
	p.mu.Unlock()

	p.publish(snapshot)
}

func (p *Poller) pollCategories(ctx context.Context) {
	categories, err := p.source.Categories(ctx)

	p.mu.Lock()
	p.polls++
	if err != nil {
		p.pollErrors++
		p.mu.Unlock()
		log.Debug().Err(err).Msg("category poll failed, keeping last snapshot")
		return
	}
	p.last.Categories = categories
	snapshot := p.last
	p.mu.Unlock()

	p.publish(snapshot)
}

// publish replaces any undelivered snapshot so the channel always holds
// the newest one.
func (p *Poller) publish(snapshot Snapshot) {
	for {
		select {
		case p.updates <- snapshot:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

// Last returns the most recent snapshot without consuming the update
// channel, for out-of-band readers like the metrics exporter.
func (p *Poller) Last() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Counters reports how many polls have run and how many of them failed.
func (p *Poller) Counters() (polls, pollErrors uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.polls, p.pollErrors
}

// Torrent fetches single-torrent detail, serving from a short-lived
// cache so repeated detail views between polls don't refetch files and
// trackers every render.
func (p *Poller) Torrent(ctx context.Context, hash string) (*panel.Torrent, error) {
	if cached, found := p.detailCache.Get(hash); found {
		if torrent, ok := cached.(*panel.Torrent); ok {
			return torrent, nil
		}
	}

	torrent, err := p.source.Torrent(ctx, hash)
	if err != nil {
		return nil, err
	}

	p.detailCache.SetWithTTL(hash, torrent, 1, detailCacheTTL)
	p.detailCache.Wait()
	return torrent, nil
}

// InvalidateDetail drops a torrent's cached detail, used after a
// mutation touching that torrent.
func (p *Poller) InvalidateDetail(hash string) {
	p.detailCache.Del(hash)
}
