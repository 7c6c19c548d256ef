// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package panel

// Hand-written query documents. The backend schema is the interop
// contract; field and argument names here must match it byte for byte.

const queryGetTorrents = `
query GetTorrents($categories: [String!], $servers: [String!]) {
    Torrents(categories: $categories, servers: $servers) {
        Server
        Name
        Category
        Ratio
        InfoHashV1
        Comment
        RootPath
        SavePath
        SizeBytes
        Tracker
        AddedOn
        State
        Files {
            Availability
            Index
            IsSeed
            Name
            PieceRange
            Priority
            Progress
            SizeBytes
        }
    }
}`

const queryGetCategories = `
query GetCategories {
    Categories {
        Name
        Path
        Servers
    }
}`

const queryGetTorrent = `
query GetTorrent($infoHashV1: String!) {
    Torrent(infoHashV1: $infoHashV1) {
        Server
        Name
        Category
        Ratio
        InfoHashV1
        Comment
        RootPath
        SavePath
        SizeBytes
        Tracker
        AddedOn
        State
        Files {
            Availability
            Index
            IsSeed
            Name
            PieceRange
            Priority
            Progress
            SizeBytes
        }
        Trackers {
            Tier
            Url
            Status
            NumPeers
            NumSeeds
            NumLeeches
            NumDownloaded
            Msg
        }
    }
}`

const mutationPauseTorrents = `
mutation PauseTorrents($args: PauseTorrentsArgs!) {
    pauseTorrents(args: $args) {
        Success
    }
}`

const mutationResumeTorrents = `
mutation ResumeTorrents($args: ResumeTorrentsArgs!) {
    resumeTorrents(args: $args) {
        Success
    }
}`

const mutationCreateCategory = `
mutation CreateCategory($args: CreateCategoryArgs!) {
    createCategory(args: $args) {
        Success
    }
}`
