package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/healthpoints/healthpoints-backend/internal/domain"
	es "github.com/healthpoints/healthpoints-backend/pkg/elasticsearch"
	pkglogger "github.com/healthpoints/healthpoints-backend/pkg/logger"
)

// PointsIndexName is the Elasticsearch index mirroring the points table
const PointsIndexName = "healthpoints_points"

// maxSearchHits caps a single free-text query; the search endpoint is
// unpaginated and returns every match.
const maxSearchHits = 1000

// PointsDocument is the indexed shape of a points record
type PointsDocument struct {
	ID        uint64 `json:"id"`
	Date      string `json:"date"`
	Exercise  int    `json:"exercise"`
	Meals     int    `json:"meals"`
	Alcohol   int    `json:"alcohol"`
	UserLogin string `json:"user_login,omitempty"`
}

// PointsIndex mirrors points records into Elasticsearch and serves
// free-text queries against them.
type PointsIndex struct {
	esClient *es.Client
}

// NewPointsIndex creates the index wrapper and ensures the mapping exists
func NewPointsIndex(esClient *es.Client) *PointsIndex {
	idx := &PointsIndex{esClient: esClient}
	if err := idx.ensureIndex(context.Background()); err != nil {
		pkglogger.GetLogger().Error().Err(err).Msg("failed to create points index")
	}
	return idx
}

func (i *PointsIndex) ensureIndex(ctx context.Context) error {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":       map[string]interface{}{"type": "long"},
				"date":     map[string]interface{}{"type": "date", "format": "yyyy-MM-dd"},
				"exercise": map[string]interface{}{"type": "integer"},
				"meals":    map[string]interface{}{"type": "integer"},
				"alcohol":  map[string]interface{}{"type": "integer"},
				"user_login": map[string]interface{}{
					"type":   "text",
					"fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword"}},
				},
			},
		},
	}
	return i.esClient.CreateIndex(ctx, PointsIndexName, mapping)
}

// Index mirrors a single points record into the search index
func (i *PointsIndex) Index(ctx context.Context, points *domain.Points) error {
	doc := DocumentFromPoints(points)
	return i.esClient.IndexDocument(ctx, PointsIndexName, strconv.FormatUint(doc.ID, 10), doc)
}

// Delete removes a points record from the search index
func (i *PointsIndex) Delete(ctx context.Context, id uint64) error {
	return i.esClient.DeleteDocument(ctx, PointsIndexName, strconv.FormatUint(id, 10))
}

// Search runs a free-text query_string query and returns every match
func (i *PointsIndex) Search(ctx context.Context, query string) ([]domain.Points, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": query,
			},
		},
	}

	resp, err := i.esClient.Search(ctx, PointsIndexName, body, 0, maxSearchHits)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Points, 0, len(resp.Results))
	for _, hit := range resp.Results {
		p, err := PointsFromSource(hit.Source)
		if err != nil {
			return nil, fmt.Errorf("malformed document %s: %w", hit.ID, err)
		}
		records = append(records, *p)
	}
	return records, nil
}

// DocumentFromPoints converts a persisted record into its indexed shape
func DocumentFromPoints(points *domain.Points) PointsDocument {
	doc := PointsDocument{
		ID:       points.ID,
		Date:     points.Date.String(),
		Exercise: points.Exercise,
		Meals:    points.Meals,
		Alcohol:  points.Alcohol,
	}
	if points.User != nil {
		doc.UserLogin = points.User.Login
	}
	return doc
}

// PointsFromSource rebuilds a points record from an indexed document
func PointsFromSource(source map[string]interface{}) (*domain.Points, error) {
	points := &domain.Points{}

	if v, ok := source["id"].(float64); ok {
		points.ID = uint64(v)
	}
	if v, ok := source["date"].(string); ok {
		var d domain.LocalDate
		if err := d.Scan(v); err != nil {
			return nil, err
		}
		points.Date = d
	}
	if v, ok := source["exercise"].(float64); ok {
		points.Exercise = int(v)
	}
	if v, ok := source["meals"].(float64); ok {
		points.Meals = int(v)
	}
	if v, ok := source["alcohol"].(float64); ok {
		points.Alcohol = int(v)
	}
	if v, ok := source["user_login"].(string); ok && v != "" {
		points.User = &domain.User{Login: v}
	}

	return points, nil
}
