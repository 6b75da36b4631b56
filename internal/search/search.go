// Package search maintains an optional Elasticsearch index of projects for
// the admin dashboard. Writes are best-effort: the relational store stays
// the source of truth and an indexing failure never fails the request.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/tecnitrama/backend/internal/metrics"
	"github.com/tecnitrama/backend/pkg/models"
)

// ErrDisabled is returned by Search when no Elasticsearch address is
// configured.
var ErrDisabled = errors.New("search index disabled")

const projectMapping = `{"settings":{"number_of_shards":1},"mappings":{"properties":{
	"title":{"type":"text"},
	"description":{"type":"text"},
	"sponsors":{"type":"text"},
	"creator_id":{"type":"keyword"},
	"is_published":{"type":"boolean"},
	"created_at":{"type":"date","format":"epoch_millis"}
}}}`

type ProjectDoc struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Sponsors    string `json:"sponsors"`
	CreatorID   int64  `json:"creator_id"`
	IsPublished bool   `json:"is_published"`
	CreatedAt   int64  `json:"created_at"`
}

// Index wraps the Elasticsearch client. A nil *Index is valid and inert, so
// callers never need to branch on whether search is configured.
type Index struct {
	client *es.Client
	index  string
	logger *slog.Logger
}

// New connects to Elasticsearch and ensures the project index exists.
// An empty addr disables search and returns a nil Index.
func New(ctx context.Context, addr, index string, logger *slog.Logger) (*Index, error) {
	if addr == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := es.NewClient(es.Config{Addresses: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("connect elasticsearch: %w", err)
	}

	exists, err := client.Indices.Exists([]string{index}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("check index %s: %w", index, err)
	}
	defer exists.Body.Close()
	if exists.StatusCode != 200 {
		res, err := client.Indices.Create(index,
			client.Indices.Create.WithBody(bytes.NewBufferString(projectMapping)),
			client.Indices.Create.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("create index %s: %w", index, err)
		}
		res.Body.Close()
	}

	logger.Info("search index ready", slog.String("index", index))

	return &Index{client: client, index: index, logger: logger}, nil
}

// Enabled reports whether an Elasticsearch backend is configured.
func (ix *Index) Enabled() bool {
	return ix != nil && ix.client != nil
}

// IndexProject upserts one project document.
func (ix *Index) IndexProject(ctx context.Context, p *models.Project) error {
	if !ix.Enabled() || p == nil {
		return nil
	}

	doc := ProjectDoc{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Sponsors:    p.Sponsors,
		CreatorID:   p.CreatorID,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
	}
	res, err := ix.client.Index(ix.index, esutil.NewJSONReader(doc),
		ix.client.Index.WithDocumentID(strconv.FormatInt(p.ID, 10)),
		ix.client.Index.WithContext(ctx))
	if err != nil {
		metrics.SearchIndexErrors.Inc()
		return fmt.Errorf("index project %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		metrics.SearchIndexErrors.Inc()
		return fmt.Errorf("index project %d: %s", p.ID, res.String())
	}

	return nil
}

// Delete removes a project document; a missing document is not an error.
func (ix *Index) Delete(ctx context.Context, projectID int64) {
	if !ix.Enabled() {
		return
	}

	res, err := ix.client.Delete(ix.index, strconv.FormatInt(projectID, 10),
		ix.client.Delete.WithContext(ctx))
	if err != nil {
		metrics.SearchIndexErrors.Inc()
		ix.logger.Error("delete project doc", slog.Int64("project_id", projectID), slog.Any("err", err))
		return
	}
	res.Body.Close()
}

// Search runs a match query over title, description and sponsors.
func (ix *Index) Search(ctx context.Context, query string) ([]ProjectDoc, error) {
	if !ix.Enabled() {
		return nil, ErrDisabled
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^2", "description", "sponsors"},
			},
		},
	}
	res, err := ix.client.Search(
		ix.client.Search.WithContext(ctx),
		ix.client.Search.WithIndex(ix.index),
		ix.client.Search.WithBody(esutil.NewJSONReader(body)))
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search projects: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ProjectDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]ProjectDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}

	return out, nil
}
