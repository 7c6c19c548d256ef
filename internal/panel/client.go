// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package panel

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrTorrentNotFound is returned by GetTorrent when the hash is unknown to
// every server in the view.
var ErrTorrentNotFound = errors.New("torrent not found")

// Client talks to the panel backend: GraphQL on {base}/query plus the
// out-of-band multipart upload endpoint. It performs no retries; a failed
// call surfaces to the initiating interaction only.
type Client struct {
	baseURL    string
	gql        *graphql.Client
	httpClient *http.Client
}

// NewClient creates a panel client for the given base URL. An empty base
// URL means "/" (same-origin relative, useful behind a reverse proxy).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "/"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}

	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
	c.gql = graphql.NewClient(c.apiURL("/query"), graphql.WithHTTPClient(httpClient))

	return c
}

// apiURL joins the configured base URL with a relative API path: trailing
// slash stripped from the base, leading slash ensured on the path.
func (c *Client) apiURL(path string) string {
	base := strings.TrimSuffix(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Torrents fetches the aggregated torrent list, optionally filtered
// server-side by categories and servers. Nil slices mean "no filter".
func (c *Client) Torrents(ctx context.Context, categories, servers []string) ([]Torrent, error) {
	req := graphql.NewRequest(queryGetTorrents)
	if len(categories) > 0 {
		req.Var("categories", categories)
	}
	if len(servers) > 0 {
		req.Var("servers", servers)
	}

	var resp struct {
		Torrents []Torrent `json:"Torrents"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to get torrents")
	}

	log.Trace().Int("count", len(resp.Torrents)).Strs("categories", categories).Msg("Fetched torrents")
	return resp.Torrents, nil
}

// Categories fetches all categories known to any server in the view.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	req := graphql.NewRequest(queryGetCategories)

	var resp struct {
		Categories []Category `json:"Categories"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to get categories")
	}

	return resp.Categories, nil
}

// Torrent fetches a single torrent by info hash, including its tracker
// list. Returns ErrTorrentNotFound when no server knows the hash.
func (c *Client) Torrent(ctx context.Context, infoHashV1 string) (*Torrent, error) {
	req := graphql.NewRequest(queryGetTorrent)
	req.Var("infoHashV1", infoHashV1)

	var resp struct {
		Torrent []*Torrent `json:"Torrent"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to get torrent")
	}

	for _, t := range resp.Torrent {
		if t != nil && t.InfoHashV1 == infoHashV1 {
			return t, nil
		}
	}
	return nil, ErrTorrentNotFound
}

// PauseTorrents pauses the referenced torrents on their owning servers.
func (c *Client) PauseTorrents(ctx context.Context, refs []TorrentRef) error {
	return c.runTorrentsMutation(ctx, mutationPauseTorrents, "pauseTorrents", refs)
}

// ResumeTorrents resumes the referenced torrents on their owning servers.
func (c *Client) ResumeTorrents(ctx context.Context, refs []TorrentRef) error {
	return c.runTorrentsMutation(ctx, mutationResumeTorrents, "resumeTorrents", refs)
}

func (c *Client) runTorrentsMutation(ctx context.Context, doc, name string, refs []TorrentRef) error {
	if len(refs) == 0 {
		return nil
	}

	req := graphql.NewRequest(doc)
	req.Var("args", map[string]any{"Torrents": refs})

	var resp map[string]struct {
		Success bool `json:"Success"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return errors.Wrapf(err, "failed to run %s", name)
	}
	if !resp[name].Success {
		return errors.Errorf("%s reported failure", name)
	}

	log.Debug().Str("mutation", name).Int("torrents", len(refs)).Msg("Mutation succeeded")
	return nil
}

// CreateCategory creates a category on every server in the view.
func (c *Client) CreateCategory(ctx context.Context, name, path string) error {
	req := graphql.NewRequest(mutationCreateCategory)
	req.Var("args", map[string]any{"Name": name, "Path": path})

	var resp struct {
		CreateCategory struct {
			Success bool `json:"Success"`
		} `json:"createCategory"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return errors.Wrap(err, "failed to create category")
	}
	if !resp.CreateCategory.Success {
		return errors.New("createCategory reported failure")
	}

	return nil
}

// HealthCheck probes the backend's health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL("/health"), nil)
	if err != nil {
		return errors.Wrap(err, "failed to build health request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "health check failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("health check failed: status %d", resp.StatusCode)
	}
	return nil
}
