package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// RegistrationIndex mirrors registrations into an Elasticsearch index.
type RegistrationIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewRegistrationIndex(es *elasticsearch.Client, index string) *RegistrationIndex {
	return &RegistrationIndex{ES: es, IndexName: index}
}

func document(r *entity.Registration) map[string]any {
	return map[string]any{
		"id":                    r.ID,
		"full_name":             r.FullName,
		"last_name":             r.LastName,
		"date_of_birth":         r.DateOfBirth,
		"major":                 r.Major,
		"department":            r.Department,
		"campus":                r.Campus,
		"programming_knowledge": r.ProgrammingKnowledge,
		"programming_goals":     r.ProgrammingGoals,
		"created_at":            r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (x *RegistrationIndex) Index(ctx context.Context, r *entity.Registration) error {
	b, err := json.Marshal(document(r))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: r.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index %s: %s", r.ID, res.Status())
	}
	return nil
}

// searchQuery builds a multi_match query over the text fields, names boosted.
func searchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query": q,
				"fields": []string{
					"full_name^2", "last_name^2", "major", "campus",
					"programming_knowledge", "programming_goals",
				},
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
		"size": size,
	}
}

func (x *RegistrationIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	b, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", x.IndexName, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		doc := h.Source
		if doc == nil {
			doc = map[string]any{}
		}
		if id, _ := doc["id"].(string); id == "" && h.ID != "" {
			doc["id"] = h.ID
		}
		out = append(out, doc)
	}
	return out, nil
}
