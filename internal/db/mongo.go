package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var _ Store = (*MongoStore)(nil)

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	books    *mongo.Collection
	comments *mongo.Collection
	contacts *mongo.Collection
	logger   *zap.Logger
}

// ConnectMongoDB opens the connection, verifies it with a ping and ensures indexes.
func ConnectMongoDB(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	database := client.Database(dbName)
	s := &MongoStore{
		client:   client,
		users:    database.Collection(UsersCollection),
		books:    database.Collection(BooksCollection),
		comments: database.Collection(CommentsCollection),
		contacts: database.Collection(ContactsCollection),
		logger:   logger,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return s, nil
}

// ensureIndexes creates lookup indexes. Email and username are deliberately non-unique:
// uniqueness is only checked at signup.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.users, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}}},
		{s.users, mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}}},
		{s.books, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
		{s.books, mongo.IndexModel{Keys: bson.D{{Key: "title", Value: 1}}}},
		{s.comments, mongo.IndexModel{Keys: bson.D{{Key: "openLibraryBookId", Value: 1}, {Key: "createdAt", Value: -1}}}},
	}
	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
