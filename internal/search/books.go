// Package search maintains the Elasticsearch book index. All index
// maintenance is best-effort; the catalog stays authoritative in postgres.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/models"
)

const booksIndex = "books"

type BookIndex struct {
	client *elasticsearch.Client
}

// NewBookIndex returns nil for a nil client; a nil index skips indexing
// and reports itself unavailable for queries.
func NewBookIndex(client *elasticsearch.Client) *BookIndex {
	if client == nil {
		return nil
	}
	return &BookIndex{client: client}
}

func (i *BookIndex) Available() bool { return i != nil }

type bookDoc struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Language  string `json:"language"`
}

func (i *BookIndex) Index(ctx context.Context, book *models.Book) error {
	if i == nil {
		return nil
	}

	doc, err := json.Marshal(bookDoc{
		Title:     book.Title,
		Author:    book.Author,
		Publisher: book.Publisher,
		Language:  book.Language,
	})
	if err != nil {
		return err
	}

	res, err := i.client.Index(
		booksIndex,
		strings.NewReader(string(doc)),
		i.client.Index.WithDocumentID(book.UID.String()),
		i.client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index book: %s: %s", res.Status(), body)
	}
	return nil
}

func (i *BookIndex) Delete(ctx context.Context, uid uuid.UUID) error {
	if i == nil {
		return nil
	}

	res, err := i.client.Delete(
		booksIndex,
		uid.String(),
		i.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// 404 means the book was never indexed; nothing to undo.
	if res.IsError() && res.StatusCode != 404 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete book: %s: %s", res.Status(), body)
	}
	return nil
}

// Search runs a multi-match query over the indexed fields and returns the
// matching book UIDs in relevance order.
func (i *BookIndex) Search(ctx context.Context, q string, from, size int) ([]uuid.UUID, error) {
	if i == nil {
		return nil, fmt.Errorf("search index not configured")
	}

	query := map[string]any{
		"from": from,
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "author", "publisher", "language"},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(booksIndex),
		i.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search books: %s: %s", res.Status(), raw)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	uids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		uid, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		uids = append(uids, uid)
	}
	return uids, nil
}
