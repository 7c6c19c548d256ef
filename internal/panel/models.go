// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package panel

// Field names mirror the panel backend's GraphQL schema exactly. The
// backend aggregates several torrent servers behind one graph; InfoHashV1
// is assumed unique across servers within a view.

// TorrentState is the backend's torrent status vocabulary.
type TorrentState string

const (
	TorrentStateDownloading       TorrentState = "downloading"
	TorrentStateForcedDl          TorrentState = "forcedDL"
	TorrentStateMetaDl            TorrentState = "metaDL"
	TorrentStateUploading         TorrentState = "uploading"
	TorrentStateForcedUp          TorrentState = "forcedUP"
	TorrentStateStalledDl         TorrentState = "stalledDL"
	TorrentStateStalledUp         TorrentState = "stalledUP"
	TorrentStatePausedDl          TorrentState = "pausedDL"
	TorrentStatePausedUp          TorrentState = "pausedUP"
	TorrentStateStoppedDl         TorrentState = "stoppedDL"
	TorrentStateStoppedUp         TorrentState = "stoppedUP"
	TorrentStateQueuedDl          TorrentState = "queuedDL"
	TorrentStateQueuedUp          TorrentState = "queuedUP"
	TorrentStateCheckingDl        TorrentState = "checkingDL"
	TorrentStateCheckingUp        TorrentState = "checkingUP"
	TorrentStateCheckingResume    TorrentState = "checkingResumeData"
	TorrentStateAllocating        TorrentState = "allocating"
	TorrentStateMoving            TorrentState = "moving"
	TorrentStateError             TorrentState = "error"
	TorrentStateMissingFiles      TorrentState = "missingFiles"
	TorrentStateUnknown           TorrentState = "unknown"
)

// Torrent is the aggregate root, identified by InfoHashV1. Collections of
// torrents are replaced wholesale on every poll; nothing here is mutated
// client-side.
type Torrent struct {
	Server     string       `json:"Server"`
	Name       string       `json:"Name"`
	Category   string       `json:"Category"`
	Ratio      float64      `json:"Ratio"`
	InfoHashV1 string       `json:"InfoHashV1"`
	Comment    string       `json:"Comment"`
	RootPath   string       `json:"RootPath"`
	SavePath   string       `json:"SavePath"`
	SizeBytes  int64        `json:"SizeBytes"`
	Tracker    string       `json:"Tracker"`
	AddedOn    int64        `json:"AddedOn"`
	State      TorrentState `json:"State"`
	Files      []File       `json:"Files"`
	Trackers   []Tracker    `json:"Trackers"`
}

// File is owned by exactly one torrent; Index is unique within the parent
// and stable across polls.
type File struct {
	Index        int     `json:"Index"`
	Name         string  `json:"Name"`
	SizeBytes    int64   `json:"SizeBytes"`
	Priority     int     `json:"Priority"`
	Progress     float64 `json:"Progress"`
	Availability float64 `json:"Availability"`
	IsSeed       bool    `json:"IsSeed"`
	PieceRange   []int   `json:"PieceRange"`
}

// Tracker is a single announce entry of a torrent.
type Tracker struct {
	Tier          int    `json:"Tier"`
	Url           string `json:"Url"`
	Status        int    `json:"Status"`
	NumPeers      int    `json:"NumPeers"`
	NumSeeds      int    `json:"NumSeeds"`
	NumLeeches    int    `json:"NumLeeches"`
	NumDownloaded int    `json:"NumDownloaded"`
	Msg           string `json:"Msg"`
}

// Category is identified by Name, unique within a server-set view.
type Category struct {
	Name    string   `json:"Name"`
	Path    string   `json:"Path"`
	Servers []string `json:"Servers"`
}

// TorrentRef addresses a torrent on its owning server for mutations. The
// payload is batch-capable even though the UI issues one ref at a time.
type TorrentRef struct {
	Server string `json:"Server"`
	Hash   string `json:"Hash"`
}
