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

type ReviewService struct {
	Repo *repo.GormRepo
}

type ReviewCreateInput struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

func (s *ReviewService) AddReviewToBook(ctx context.Context, userEmail string, bookUID uuid.UUID, in ReviewCreateInput) (*models.Review, error) {
	l := logging.FromContext(ctx).With("svc", "review.add")

	if in.Rating < 1 || in.Rating > 5 {
		return nil, &apperr.Error{
			Status:  400,
			Code:    "invalid_rating",
			Message: "rating must be between 1 and 5",
		}
	}

	if _, err := s.Repo.GetBook(ctx, bookUID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrBookNotFound
		}
		l.Error("add review failed", "error", err)
		return nil, apperr.ErrServer
	}

	user, err := s.Repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		l.Error("add review failed", "error", err)
		return nil, apperr.ErrServer
	}

	review := models.Review{
		Rating:     in.Rating,
		ReviewText: in.ReviewText,
		UserUID:    user.UID,
		BookUID:    bookUID,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		l.Error("add review failed", "error", err)
		return nil, apperr.ErrServer
	}

	return &review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, uid uuid.UUID) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrReviewNotFound
		}
		logging.FromContext(ctx).Error("get review failed", "error", err)
		return nil, apperr.ErrServer
	}
	return review, nil
}

// DeleteReview removes a review; only its author or an admin may do so.
func (s *ReviewService) DeleteReview(ctx context.Context, uid uuid.UUID, requester *models.User) error {
	review, err := s.GetReview(ctx, uid)
	if err != nil {
		return err
	}

	if review.UserUID != requester.UID && requester.Role != "admin" {
		return apperr.ErrInsufficientPermission
	}

	if err := s.Repo.DeleteReview(ctx, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.ErrReviewNotFound
		}
		logging.FromContext(ctx).Error("delete review failed", "error", err)
		return apperr.ErrServer
	}
	return nil
}
