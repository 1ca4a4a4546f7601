package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *MongoStore) InsertBook(ctx context.Context, book *models.Book) error {
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt
	if book.Genre == nil {
		book.Genre = []string{}
	}
	if _, err := s.books.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (s *MongoStore) ListBooksByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Book, error) {
	cursor, err := s.books.Find(ctx, bson.M{"userId": owner})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (s *MongoStore) CountBooksByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	n, err := s.books.CountDocuments(ctx, bson.M{"userId": owner})
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

func (s *MongoStore) DeleteBook(ctx context.Context, owner, id primitive.ObjectID) (models.Book, error) {
	var book models.Book
	err := s.books.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": owner}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, apperr.NewNotFound("Book not found")
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("delete book: %w", err)
	}
	return book, nil
}

func (s *MongoStore) ReadCounts(ctx context.Context) ([]models.ReadCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$title"},
			{Key: "author", Value: bson.D{{Key: "$first", Value: "$author"}}},
			{Key: "cover", Value: bson.D{{Key: "$first", Value: "$cover"}}},
			{Key: "readerCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.books.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate read counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.ReadCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode read counts: %w", err)
	}
	return counts, nil
}
