package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	UID          uuid.UUID `gorm:"type:uuid;primaryKey"  json:"uid"`
	Username     string    `gorm:"not null"              json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	IsVerified   bool      `gorm:"default:false"         json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.UID == uuid.Nil {
		u.UID = uuid.New()
	}
	return nil
}

type Book struct {
	UID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Title         string    `gorm:"not null"             json:"title"`
	Author        string    `gorm:"not null"             json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate time.Time `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	UserUID       uuid.UUID `gorm:"type:uuid;index"      json:"user_uid"`
	Tags          []Tag     `gorm:"many2many:book_tags"  json:"tags,omitempty"`
	Reviews       []Review  `gorm:"foreignKey:BookUID"   json:"reviews,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (b *Book) BeforeCreate(*gorm.DB) error {
	if b.UID == uuid.Nil {
		b.UID = uuid.New()
	}
	return nil
}

type Tag struct {
	UID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.UID == uuid.Nil {
		t.UID = uuid.New()
	}
	return nil
}

type Review struct {
	UID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Rating     int       `gorm:"not null"             json:"rating"`
	ReviewText string    `gorm:"not null"             json:"review_text"`
	UserUID    uuid.UUID `gorm:"type:uuid;index"      json:"user_uid"`
	BookUID    uuid.UUID `gorm:"type:uuid;index"      json:"book_uid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.UID == uuid.Nil {
		r.UID = uuid.New()
	}
	return nil
}
