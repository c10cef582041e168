package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
)

type TagService struct {
	Repo *repo.GormRepo
}

func (s *TagService) GetTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.Repo.GetTags(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list tags failed", "error", err)
		return nil, apperr.ErrServer
	}
	return tags, nil
}

func (s *TagService) AddTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := s.Repo.CreateTag(ctx, &tag); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, apperr.ErrTagExists
		}
		logging.FromContext(ctx).Error("create tag failed", "error", err)
		return nil, apperr.ErrServer
	}
	return &tag, nil
}

func (s *TagService) UpdateTag(ctx context.Context, uid uuid.UUID, name string) (*models.Tag, error) {
	tag, err := s.Repo.UpdateTag(ctx, uid, name)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrTagNotFound
		}
		logging.FromContext(ctx).Error("update tag failed", "error", err)
		return nil, apperr.ErrServer
	}
	return tag, nil
}

func (s *TagService) DeleteTag(ctx context.Context, uid uuid.UUID) error {
	if err := s.Repo.DeleteTag(ctx, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.ErrTagNotFound
		}
		logging.FromContext(ctx).Error("delete tag failed", "error", err)
		return apperr.ErrServer
	}
	return nil
}

func (s *TagService) AddTagsToBook(ctx context.Context, bookUID uuid.UUID, names []string) (*models.Book, error) {
	book, err := s.Repo.AddTagsToBook(ctx, bookUID, names)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrBookNotFound
		}
		logging.FromContext(ctx).Error("attach tags failed", "error", err)
		return nil, apperr.ErrServer
	}
	return book, nil
}
