package db

import (
	"context"
	"time"

	"github.com/arzan03/BookNook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	UsersCollection    = "users"
	BooksCollection    = "books"
	CommentsCollection = "comments"
	ContactsCollection = "contacts"
)

// UserStore persists user records. Lookups that match nothing return an apperr NotFound error.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByIdentifier matches either username or email.
	FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// BookStore persists saved books.
type BookStore interface {
	InsertBook(ctx context.Context, book *models.Book) error
	ListBooksByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Book, error)
	CountBooksByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
	// DeleteBook removes the book only when owner owns it and returns the removed record.
	DeleteBook(ctx context.Context, owner, id primitive.ObjectID) (models.Book, error)
	// ReadCounts groups every book by title, ordered by title.
	ReadCounts(ctx context.Context) ([]models.ReadCount, error)
}

// CommentStore persists public comments keyed by catalog id.
type CommentStore interface {
	InsertComment(ctx context.Context, comment *models.Comment) error
	// ListComments returns comments for catalogID, newest first.
	ListComments(ctx context.Context, catalogID string) ([]models.Comment, error)
}

type ContactStore interface {
	InsertContact(ctx context.Context, contact *models.Contact) error
}

// Store is the full persistence surface of the application.
type Store interface {
	UserStore
	BookStore
	CommentStore
	ContactStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
