package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OpenLibraryBookID string             `bson:"openlibrarybookid,omitempty" json:"openLibraryBookId,omitempty"`
	Title             string             `bson:"title" json:"title"`
	Author            string             `bson:"author" json:"author"`
	Description       string             `bson:"description" json:"description"`
	Cover             string             `bson:"cover" json:"cover"`
	Year              int                `bson:"year,omitempty" json:"year,omitempty"`
	Genre             []string           `bson:"genre" json:"genre"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReadCount is one row of the per-title reader tally. ID holds the title.
type ReadCount struct {
	ID          string `bson:"_id" json:"_id"`
	Author      string `bson:"author" json:"author"`
	Cover       string `bson:"cover" json:"cover"`
	ReaderCount int    `bson:"readerCount" json:"readerCount"`
}
