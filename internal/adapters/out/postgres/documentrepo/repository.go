// Package documentrepo archives rendered documents in the documents table and
// serves them back by name.
package documentrepo

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentDTO struct {
	Name        string `gorm:"size:255;primaryKey"`
	ContentType string `gorm:"size:100;not null"`
	Data        []byte `gorm:"type:bytea;not null"`
	CreatedAt   time.Time
}

func (DocumentDTO) TableName() string {
	return "documents"
}

// Document is an archived file.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// GormDocumentStore implements ports.DocumentStore. Archived documents are
// reachable at <publicBaseURL>/documents/<name>.
type GormDocumentStore struct {
	db            *gorm.DB
	publicBaseURL string
}

func NewGormDocumentStore(db *gorm.DB, publicBaseURL string) *GormDocumentStore {
	return &GormDocumentStore{db: db, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Put stores data under name, replacing an earlier version, and returns its URL.
func (s *GormDocumentStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(required("name", name), required("contentType", contentType)); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errs.NewValueIsRequiredError("data")
	}

	dto := DocumentDTO{Name: name, ContentType: contentType, Data: data}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_type", "data", "created_at"}),
	}).Create(&dto).Error
	if err != nil {
		return "", err
	}
	return s.URLFor(name), nil
}

func (s *GormDocumentStore) Get(ctx context.Context, name string) (Document, error) {
	var dto DocumentDTO
	if err := s.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Document{}, errs.NewObjectNotFoundError("document", name)
		}
		return Document{}, err
	}
	return Document(dto), nil
}

func (s *GormDocumentStore) URLFor(name string) string {
	return s.publicBaseURL + "/documents/" + url.PathEscape(name)
}

func required(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
