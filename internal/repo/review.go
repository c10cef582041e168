package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) GetReview(ctx context.Context, uid uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&review).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, uid uuid.UUID) error {
	tx := r.DB.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Review{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
