// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadTorrentsMultipartShape(t *testing.T) {
	var (
		gotPath     string
		gotCategory string
		gotFiles    []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotCategory = r.FormValue("category")
		for _, fh := range r.MultipartForm.File["torrents"] {
			gotFiles = append(gotFiles, fh.Filename)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	files := []UploadFile{
		{Name: "alpha.torrent", Data: []byte("d8:announce0:e")},
		{Name: "beta.torrent", Data: []byte("d8:announce0:e")},
	}

	err := c.UploadTorrents(context.Background(), files, "movies")
	require.NoError(t, err)

	assert.Equal(t, "/uploadTorrent", gotPath)
	assert.Equal(t, "movies", gotCategory)
	assert.Equal(t, []string{"alpha.torrent", "beta.torrent"}, gotFiles)
}

func TestUploadTorrentsEmptyCategoryStillSent(t *testing.T) {
	var categoryValues []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		categoryValues = r.MultipartForm.Value["category"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.UploadTorrents(context.Background(), []UploadFile{{Name: "a.torrent", Data: []byte("x")}}, "")
	require.NoError(t, err)

	// Uncategorized uploads carry an explicit empty field
	require.Len(t, categoryValues, 1)
	assert.Equal(t, "", categoryValues[0])
}

func TestUploadTorrentsErrorBodySurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Category not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.UploadTorrents(context.Background(), []UploadFile{{Name: "a.torrent", Data: []byte("x")}}, "nope")
	require.Error(t, err)
	assert.Equal(t, "Category not found", err.Error())
}

func TestUploadTorrentsGenericFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.UploadTorrents(context.Background(), []UploadFile{{Name: "a.torrent", Data: []byte("x")}}, "")
	require.Error(t, err)
	assert.Equal(t, "Upload failed", err.Error())
}

func TestUploadTorrentsRequiresFiles(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)
	err := c.UploadTorrents(context.Background(), nil, "")
	require.Error(t, err)
}
