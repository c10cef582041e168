package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/models"
)

func (r *GormRepo) GetBooks(ctx context.Context, offset, limit int) ([]models.Book, error) {
	books := make([]models.Book, 0)
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetUserBooks(ctx context.Context, userUID uuid.UUID) ([]models.Book, error) {
	books := make([]models.Book, 0)
	if err := r.DB.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("created_at DESC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).
		Preload("Tags").Preload("Reviews").
		Where("uid = ?", uid).
		First(&book).Error; err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Create(book).Error
}

func (r *GormRepo) UpdateBook(ctx context.Context, uid uuid.UUID, fields map[string]any) (*models.Book, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Book{}).Where("uid = ?", uid).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetBook(ctx, uid)
}

func (r *GormRepo) DeleteBook(ctx context.Context, uid uuid.UUID) error {
	tx := r.DB.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Book{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchBooks is the database fallback used when no search index is
// configured. Matches on title or author substring, case-insensitively
// on both postgres and sqlite.
func (r *GormRepo) SearchBooks(ctx context.Context, q string, offset, limit int) ([]models.Book, error) {
	books := make([]models.Book, 0)
	pattern := "%" + strings.ToLower(q) + "%"
	if err := r.DB.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBooksByUIDs(ctx context.Context, uids []uuid.UUID) ([]models.Book, error) {
	if len(uids) == 0 {
		return []models.Book{}, nil
	}
	books := make([]models.Book, 0)
	if err := r.DB.WithContext(ctx).Where("uid IN ?", uids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}
