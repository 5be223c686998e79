package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// messageDoc is the indexed form of a feed row. Both author names are stored;
// the application picks which one a viewer sees.
type messageDoc struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Title                string    `json:"title"`
	Content              string    `json:"content"`
	SpecialMemberName    string    `json:"special_member_name,omitempty"`
	NonMemberDisplayName string    `json:"non_member_display_name"`
	CreatedAt            time.Time `json:"created_at"`
}

func docFromRow(r entity.FeedRow) messageDoc {
	return messageDoc{
		ID:                   r.ID,
		UserID:               r.UserID,
		Title:                r.Title,
		Content:              r.Content,
		SpecialMemberName:    r.AuthorSpecialMemberName,
		NonMemberDisplayName: r.AuthorNonMemberDisplayName,
		CreatedAt:            r.CreatedAt,
	}
}

func (d messageDoc) row() entity.FeedRow {
	return entity.FeedRow{
		Message: entity.Message{
			ID:        d.ID,
			UserID:    d.UserID,
			Title:     d.Title,
			Content:   d.Content,
			CreatedAt: d.CreatedAt,
		},
		AuthorSpecialMemberName:    d.SpecialMemberName,
		AuthorNonMemberDisplayName: d.NonMemberDisplayName,
	}
}

// MessageIndex stores messages in an Elasticsearch index for full-text search.
type MessageIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewMessageIndex(es *elasticsearch.Client, index string) *MessageIndex {
	return &MessageIndex{ES: es, IndexName: index}
}

func (m *MessageIndex) Index(ctx context.Context, row entity.FeedRow) error {
	b, err := json.Marshal(docFromRow(row))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: m.IndexName, DocumentID: row.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, m.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Delete removes a message document. A missing document is not an error.
func (m *MessageIndex) Delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: m.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, m.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over title and content, newest first on ties.
func (m *MessageIndex) Search(ctx context.Context, q string, size int) ([]entity.FeedRow, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content"},
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := m.ES.Search(
		m.ES.Search.WithContext(c),
		m.ES.Search.WithIndex(m.IndexName),
		m.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusNotFound {
		// index not created yet
		return []entity.FeedRow{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string     `json:"_id"`
				Source messageDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.FeedRow, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if h.Source.ID == "" {
			h.Source.ID = h.ID
		}
		out = append(out, h.Source.row())
	}
	return out, nil
}
