package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/events"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
	"github.com/studyscope/studyscope/internal/search"
)

const publishedDateLayout = "2006-01-02"

type BookService struct {
	Repo     *repo.GormRepo
	Index    *search.BookIndex
	Producer *events.Producer
}

type BookCreateInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Language      string `json:"language"`
}

type BookUpdateInput struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"page_count"`
	Language  string `json:"language"`
}

func (s *BookService) GetBooks(ctx context.Context, offset, limit int) ([]models.Book, error) {
	books, err := s.Repo.GetBooks(ctx, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list books failed", "error", err)
		return nil, apperr.ErrServer
	}
	return books, nil
}

func (s *BookService) GetUserBooks(ctx context.Context, userUID uuid.UUID) ([]models.Book, error) {
	books, err := s.Repo.GetUserBooks(ctx, userUID)
	if err != nil {
		logging.FromContext(ctx).Error("list user books failed", "error", err)
		return nil, apperr.ErrServer
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrBookNotFound
		}
		logging.FromContext(ctx).Error("get book failed", "error", err)
		return nil, apperr.ErrServer
	}
	return book, nil
}

func (s *BookService) CreateBook(ctx context.Context, in BookCreateInput, userUID uuid.UUID) (*models.Book, error) {
	l := logging.FromContext(ctx).With("svc", "book.create")

	published, err := time.Parse(publishedDateLayout, in.PublishedDate)
	if err != nil {
		return nil, &apperr.Error{
			Status:  400,
			Code:    "invalid_published_date",
			Message: "published_date must be YYYY-MM-DD",
		}
	}

	book := models.Book{
		Title:         in.Title,
		Author:        in.Author,
		Publisher:     in.Publisher,
		PublishedDate: published,
		PageCount:     in.PageCount,
		Language:      in.Language,
		UserUID:       userUID,
	}

	if err := s.Repo.CreateBook(ctx, &book); err != nil {
		l.Error("create book failed", "error", err)
		return nil, apperr.ErrServer
	}

	s.indexBook(ctx, &book)
	s.publish(ctx, book.UID.String(), map[string]any{
		"type": "book_created",
		"uid":  book.UID.String(),
		"by":   userUID.String(),
	})

	l.Info("book created", "uid", book.UID.String())
	return &book, nil
}

func (s *BookService) UpdateBook(ctx context.Context, uid uuid.UUID, in BookUpdateInput) (*models.Book, error) {
	l := logging.FromContext(ctx).With("svc", "book.update")

	book, err := s.Repo.UpdateBook(ctx, uid, map[string]any{
		"title":      in.Title,
		"author":     in.Author,
		"publisher":  in.Publisher,
		"page_count": in.PageCount,
		"language":   in.Language,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrBookNotFound
		}
		l.Error("update book failed", "error", err)
		return nil, apperr.ErrServer
	}

	s.indexBook(ctx, book)
	s.publish(ctx, uid.String(), map[string]any{
		"type": "book_updated",
		"uid":  uid.String(),
	})

	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, uid uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "book.delete")

	if err := s.Repo.DeleteBook(ctx, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.ErrBookNotFound
		}
		l.Error("delete book failed", "error", err)
		return apperr.ErrServer
	}

	if err := s.Index.Delete(ctx, uid); err != nil {
		l.Error("deindex book failed", "uid", uid.String(), "error", err)
	}
	s.publish(ctx, uid.String(), map[string]any{
		"type": "book_deleted",
		"uid":  uid.String(),
	})

	return nil
}

// SearchBooks queries the Elasticsearch index when configured and falls
// back to a database substring match otherwise.
func (s *BookService) SearchBooks(ctx context.Context, q string, offset, limit int) ([]models.Book, error) {
	if q == "" {
		return []models.Book{}, nil
	}

	if !s.Index.Available() {
		books, err := s.Repo.SearchBooks(ctx, q, offset, limit)
		if err != nil {
			logging.FromContext(ctx).Error("search fallback failed", "error", err)
			return nil, apperr.ErrServer
		}
		return books, nil
	}

	uids, err := s.Index.Search(ctx, q, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("index search failed", "error", err)
		return nil, apperr.ErrServer
	}

	books, err := s.Repo.GetBooksByUIDs(ctx, uids)
	if err != nil {
		logging.FromContext(ctx).Error("search hydrate failed", "error", err)
		return nil, apperr.ErrServer
	}

	// Preserve index relevance order.
	byUID := make(map[uuid.UUID]models.Book, len(books))
	for _, b := range books {
		byUID[b.UID] = b
	}
	ordered := make([]models.Book, 0, len(uids))
	for _, uid := range uids {
		if b, ok := byUID[uid]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered, nil
}

func (s *BookService) indexBook(ctx context.Context, book *models.Book) {
	if err := s.Index.Index(ctx, book); err != nil {
		logging.FromContext(ctx).Error("index book failed", "uid", book.UID.String(), "error", err)
	}
}

func (s *BookService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicBookEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", events.TopicBookEvents, "error", err)
	}
}
