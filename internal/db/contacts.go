package db

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/BookNook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *MongoStore) InsertContact(ctx context.Context, contact *models.Contact) error {
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	if _, err := s.contacts.InsertOne(ctx, contact); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}
