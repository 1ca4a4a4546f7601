package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is keyed by the OpenLibrary work id, not by a local Book.
type Comment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OpenLibraryBookID string             `bson:"openLibraryBookId" json:"openLibraryBookId"`
	Username          string             `bson:"username" json:"username"`
	Content           string             `bson:"content" json:"content"`
	Rating            int                `bson:"rating" json:"rating"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
