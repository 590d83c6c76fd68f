package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
)

const (
	// DefaultIndex is the index name for courier documents.
	DefaultIndex = "couriers"

	// maxCandidates bounds a single radius query. The expansion loop works on
	// supersets, so a truncated page only delays a match by one expansion.
	maxCandidates = 500
)

// CourierGeoIndex implements the GeoIndex port on Elasticsearch. Radius
// queries use a geo_distance filter over active, available courier documents.
type CourierGeoIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewCourierGeoIndex creates a geo index bound to the given index name.
// An empty index name selects DefaultIndex.
func NewCourierGeoIndex(client *elasticsearch.Client, index string) (*CourierGeoIndex, error) {
	if client == nil {
		return nil, fmt.Errorf("elasticsearch client is required")
	}
	if index == "" {
		index = DefaultIndex
	}

	return &CourierGeoIndex{client: client, index: index}, nil
}

// FindCandidates returns active, available couriers within radiusKm of center.
func (g *CourierGeoIndex) FindCandidates(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
) ([]*courier.Courier, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	query := map[string]any{
		"size": maxCandidates,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"is_active": true}},
					map[string]any{"term": map[string]any{"is_available": true}},
					map[string]any{
						"geo_distance": map[string]any{
							"distance": fmt.Sprintf("%fkm", radiusKm),
							"location": GeoPointDoc{
								Lat: center.Latitude(),
								Lon: center.Longitude(),
							},
						},
					},
				},
			},
		},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("encode candidate query: %w", err)
	}

	res, err := g.client.Search(
		g.client.Search.WithContext(ctx),
		g.client.Search.WithIndex(g.index),
		g.client.Search.WithBody(&body),
	)
	if err != nil {
		return nil, fmt.Errorf("search couriers: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search couriers: %s", res.Status())
	}

	var page struct {
		Hits struct {
			Hits []struct {
				Source CourierDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode candidate response: %w", err)
	}

	candidates := make([]*courier.Courier, 0, len(page.Hits.Hits))
	for _, hit := range page.Hits.Hits {
		c, err := documentToDomain(hit.Source)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// Index writes or refreshes the courier document keyed by the courier id.
func (g *CourierGeoIndex) Index(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := documentFromDomain(aggregate)

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(doc); err != nil {
		return fmt.Errorf("encode courier document: %w", err)
	}

	res, err := g.client.Index(
		g.index,
		&body,
		g.client.Index.WithContext(ctx),
		g.client.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return fmt.Errorf("index courier %s: %w", doc.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index courier %s: %s", doc.ID, res.Status())
	}

	return nil
}

// Remove deletes the courier document. A missing document is not an error.
func (g *CourierGeoIndex) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	res, err := g.client.Delete(
		g.index,
		id.String(),
		g.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("remove courier %s: %w", id.String(), err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove courier %s: %s", id.String(), res.Status())
	}

	return nil
}
