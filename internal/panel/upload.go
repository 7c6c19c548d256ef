// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package panel

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// UploadFile is a single .torrent file payload.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadTorrents posts one or more .torrent files to the backend's
// multipart upload endpoint. File payloads are not expressed through the
// GraphQL transport; this asymmetry is part of the backend contract.
// An empty category means uncategorized and the field is still sent.
func (c *Client) UploadTorrents(ctx context.Context, files []UploadFile, category string) error {
	if len(files) == 0 {
		return errors.New("no torrent files to upload")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, f := range files {
		part, err := writer.CreateFormFile("torrents", f.Name)
		if err != nil {
			return errors.Wrap(err, "failed to create form file")
		}
		if _, err := part.Write(f.Data); err != nil {
			return errors.Wrap(err, "failed to write torrent payload")
		}
	}

	if err := writer.WriteField("category", category); err != nil {
		return errors.Wrap(err, "failed to write category field")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/uploadTorrent"), &body)
	if err != nil {
		return errors.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "upload request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "Upload failed"
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if text := strings.TrimSpace(string(data)); text != "" {
				msg = text
			}
		}
		return errors.New(msg)
	}

	log.Info().Int("files", len(files)).Str("category", category).Msg("Uploaded torrents")
	return nil
}
