package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportLinkTTL is how long a collection download link stays valid.
const ExportLinkTTL = 15 * time.Minute

// SnapshotStore is the object storage used for collection exports.
type SnapshotStore interface {
	PutObject(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type ExportResult struct {
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in"`
}

type collectionSnapshot struct {
	UserID     string        `json:"userId"`
	ExportedAt time.Time     `json:"exportedAt"`
	Books      []models.Book `json:"books"`
}

// ExportService writes a user's collection to object storage and hands out a download link.
type ExportService struct {
	books db.BookStore
	store SnapshotStore
	now   func() time.Time
}

// NewExportService creates the service; a nil store disables exports.
func NewExportService(books db.BookStore, store SnapshotStore) *ExportService {
	return &ExportService{books: books, store: store, now: time.Now}
}

func (s *ExportService) Enabled() bool { return s.store != nil }

func (s *ExportService) ExportCollection(ctx context.Context, userID string) (ExportResult, error) {
	if !s.Enabled() {
		return ExportResult{}, apperr.New(apperr.Unavailable, "Collection export is not configured")
	}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ExportResult{}, apperr.NewNotFound("User not found")
	}

	books, err := s.books.ListBooksByOwner(ctx, owner)
	if err != nil {
		return ExportResult{}, apperr.NewInternal("Error fetching books", err)
	}

	now := s.now().UTC()
	data, err := json.MarshalIndent(collectionSnapshot{UserID: userID, ExportedAt: now, Books: books}, "", "  ")
	if err != nil {
		return ExportResult{}, apperr.NewInternal("Error exporting books", err)
	}

	objectName := fmt.Sprintf("%s/%s.json", userID, now.Format("20060102T150405Z"))
	if err := s.store.PutObject(ctx, objectName, data, "application/json"); err != nil {
		return ExportResult{}, apperr.NewInternal("Error exporting books", err)
	}

	link, err := s.store.PresignedGetURL(ctx, objectName, ExportLinkTTL)
	if err != nil {
		return ExportResult{}, apperr.NewInternal("Error exporting books", err)
	}
	return ExportResult{URL: link, ExpiresIn: ExportLinkTTL.String()}, nil
}
