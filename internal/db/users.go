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

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return s.findUser(ctx, bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.NewNotFound("User not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *MongoStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.updateUser(ctx, id, bson.M{"password": hash})
}

func (s *MongoStore) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return s.updateUser(ctx, id, bson.M{"lastLogin": at})
}

func (s *MongoStore) updateUser(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NewNotFound("User not found")
	}
	return nil
}
