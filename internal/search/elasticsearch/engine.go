package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/search"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// Engine is an Elasticsearch-backed implementation of the search.Engine interface.
type Engine struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

var _ search.Engine = (*Engine)(nil)

// esSearchResponse is the structure used to decode Elasticsearch search responses.
type esSearchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// esBulkResponse is the structure used to decode Elasticsearch bulk responses.
type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// esErrorResponse is used to decode Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// New creates a new Elasticsearch engine connected to the given URL.
// If indexName is empty, DefaultIndexName ("products") is used. The index
// itself is not touched here; call EnsureIndex before indexing.
func New(esURL string, indexName string, logger *slog.Logger) (*Engine, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}

	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	return &Engine{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}, nil
}

// IndexName returns the name of the index this engine operates on.
func (e *Engine) IndexName() string {
	return e.indexName
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// EnsureIndex checks whether the product index exists and creates it with the
// catalog mapping if not. With recreate set, an existing index is deleted
// first so the mapping is rebuilt from scratch.
func (e *Engine) EnsureIndex(ctx context.Context, recreate bool) error {
	res, err := e.client.Indices.Exists(
		[]string{e.indexName},
		e.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	_ = res.Body.Close()

	// Status 200 means the index exists.
	if res.StatusCode == 200 {
		if !recreate {
			e.logger.Info("elasticsearch index already exists", "index", e.indexName)
			return nil
		}

		if err := e.DeleteIndex(ctx); err != nil {
			return err
		}
		e.logger.Info("elasticsearch index deleted for recreation", "index", e.indexName)
	}

	create, err := e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithBody(strings.NewReader(indexMapping())),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = create.Body.Close() }()

	if create.IsError() {
		return fmt.Errorf("create index: %s", decodeError(create.Body, create.Status()))
	}

	e.logger.Info("elasticsearch index created", "index", e.indexName)
	return nil
}

// DeleteIndex removes the product index. A missing index is not an error.
func (e *Engine) DeleteIndex(ctx context.Context) error {
	res, err := e.client.Indices.Delete(
		[]string{e.indexName},
		e.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete index: %s", decodeError(res.Body, res.Status()))
	}
	return nil
}

// Index adds or updates a single product document. The call waits for the
// next index refresh so the document is visible to searches on return.
func (e *Engine) Index(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc.Source())
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal document: %w", err)
	}

	res, err := e.client.Index(
		e.indexName,
		bytes.NewReader(data),
		e.client.Index.WithDocumentID(strconv.FormatInt(doc.ID, 10)),
		e.client.Index.WithRefresh("wait_for"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index: %s", decodeError(res.Body, res.Status()))
	}

	e.logger.Debug("indexed product", "id", doc.ID)
	return nil
}

// Bulk indexes a batch of documents with one NDJSON request. A transport or
// request-level failure is returned as an error; per-document rejections are
// collected into the result so the caller can account for partial success.
func (e *Engine) Bulk(ctx context.Context, docs []domain.Document) (*search.BulkResult, error) {
	if len(docs) == 0 {
		return &search.BulkResult{}, nil
	}

	var buf bytes.Buffer

	for i := range docs {
		action := map[string]any{
			"index": map[string]any{
				"_index": e.indexName,
				"_id":    strconv.FormatInt(docs[i].ID, 10),
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return nil, fmt.Errorf("elasticsearch bulk: encode action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(docs[i].Source()); err != nil {
			return nil, fmt.Errorf("elasticsearch bulk: encode document: %w", err)
		}
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.indexName),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch bulk: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch bulk: %s", decodeError(res.Body, res.Status()))
	}

	var bulkResp esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return nil, fmt.Errorf("elasticsearch bulk: decode response: %w", err)
	}

	result := &search.BulkResult{}
	if bulkResp.Errors {
		for _, item := range bulkResp.Items {
			if item.Index.Error.Type == "" {
				continue
			}
			id, _ := strconv.ParseInt(item.Index.ID, 10, 64)
			result.Errors = append(result.Errors, search.ItemError{
				ID:     id,
				Type:   item.Index.Error.Type,
				Reason: item.Index.Error.Reason,
			})
		}
	}

	e.logger.Debug("bulk indexed products", "count", len(docs), "errors", len(result.Errors))
	return result, nil
}

// Refresh forces an index refresh so previously bulk-indexed documents
// become visible to searches.
func (e *Engine) Refresh(ctx context.Context) error {
	res, err := e.client.Indices.Refresh(
		e.client.Indices.Refresh.WithIndex(e.indexName),
		e.client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch refresh: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch refresh: %s", decodeError(res.Body, res.Status()))
	}
	return nil
}

// Search executes a product query against Elasticsearch and returns the raw
// document sources of the matching hits.
func (e *Engine) Search(ctx context.Context, q *domain.ProductQuery) (*search.Result, error) {
	body := BuildQuery(q)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, apperrors.SearchUnavailable(fmt.Errorf("elasticsearch search: %w", err))
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, apperrors.SearchUnavailable(fmt.Errorf("elasticsearch search: %s", decodeError(res.Body, res.Status())))
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	sources := make([]map[string]any, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		sources = append(sources, hit.Source)
	}

	return &search.Result{
		Total:   esResp.Hits.Total.Value,
		Sources: sources,
		TookMs:  int64(esResp.Took),
	}, nil
}

// Delete removes a product document by its ID.
// It does not return an error if the document does not exist (404 is ignored).
func (e *Engine) Delete(ctx context.Context, id int64) error {
	res, err := e.client.Delete(
		e.indexName,
		strconv.FormatInt(id, 10),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	// Ignore 404, the document might not exist.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete: %s", decodeError(res.Body, res.Status()))
	}

	e.logger.Debug("deleted product", "id", id)
	return nil
}

// decodeError extracts the type and reason from an Elasticsearch error body,
// falling back to the HTTP status line when the body is not decodable.
func decodeError(body io.Reader, status string) string {
	var errResp esErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err == nil && errResp.Error.Type != "" {
		return fmt.Sprintf("%s: %s", errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Sprintf("unexpected status %s", status)
}
