package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyscope/studyscope/internal/models"
)

func (r *GormRepo) GetTags(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormRepo) GetTag(ctx context.Context, uid uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *GormRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	var existing models.Tag
	err := r.DB.WithContext(ctx).Where("name = ?", tag.Name).First(&existing).Error
	if err == nil {
		return ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(tag).Error
}

func (r *GormRepo) UpdateTag(ctx context.Context, uid uuid.UUID, name string) (*models.Tag, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Tag{}).Where("uid = ?", uid).Update("name", name)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetTag(ctx, uid)
}

func (r *GormRepo) DeleteTag(ctx context.Context, uid uuid.UUID) error {
	tx := r.DB.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Tag{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTagsToBook attaches the named tags to a book, creating tags that do
// not exist yet.
func (r *GormRepo) AddTagsToBook(ctx context.Context, bookUID uuid.UUID, names []string) (*models.Book, error) {
	book, err := r.GetBook(ctx, bookUID)
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Model(book).Association("Tags").Append(&tag); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetBook(ctx, bookUID)
}
