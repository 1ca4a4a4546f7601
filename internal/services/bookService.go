package services

import (
	"context"
	"errors"
	"strings"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/models"
	"github.com/arzan03/BookNook/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookInput struct {
	Title             string   `json:"title" validate:"required"`
	Author            string   `json:"author" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	Cover             string   `json:"cover" validate:"required"`
	OpenLibraryBookID string   `json:"openLibraryBookId"`
	Year              int      `json:"year" validate:"gte=0"`
	Genre             []string `json:"genre"`
}

type BookService struct {
	users db.UserStore
	books db.BookStore
}

func NewBookService(users db.UserStore, books db.BookStore) *BookService {
	return &BookService{users: users, books: books}
}

// SaveBook adds a book to the collection of userID.
func (s *BookService) SaveBook(ctx context.Context, userID string, in BookInput) (models.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Description = strings.TrimSpace(in.Description)
	in.Cover = strings.TrimSpace(in.Cover)

	if fe := utils.Validate(in); fe != nil {
		if fe.Field == "Year" {
			return models.Book{}, apperr.NewValidation("Year must not be negative")
		}
		return models.Book{}, apperr.NewValidation("All fields (title, author, description, cover) are required")
	}

	owner, err := s.ownerID(ctx, userID)
	if err != nil {
		return models.Book{}, err
	}

	genre := make([]string, 0, len(in.Genre))
	for _, g := range in.Genre {
		if g = strings.TrimSpace(g); g != "" {
			genre = append(genre, g)
		}
	}

	book := models.Book{
		OpenLibraryBookID: strings.TrimSpace(in.OpenLibraryBookID),
		Title:             in.Title,
		Author:            in.Author,
		Description:       in.Description,
		Cover:             in.Cover,
		Year:              in.Year,
		Genre:             genre,
		UserID:            owner,
	}
	if err := s.books.InsertBook(ctx, &book); err != nil {
		return models.Book{}, apperr.NewInternal("Internal server error", err)
	}
	return book, nil
}

// ListBooks returns every book saved by userID.
func (s *BookService) ListBooks(ctx context.Context, userID string) ([]models.Book, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.NewNotFound("User not found")
	}
	books, err := s.books.ListBooksByOwner(ctx, owner)
	if err != nil {
		return nil, apperr.NewInternal("Error fetching books", err)
	}
	return books, nil
}

// DeleteBook removes bookID if userID owns it.
func (s *BookService) DeleteBook(ctx context.Context, userID, bookID string) (models.Book, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Book{}, apperr.NewNotFound("Book not found")
	}
	id, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return models.Book{}, apperr.NewNotFound("Book not found")
	}

	book, err := s.books.DeleteBook(ctx, owner, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.Book{}, err
		}
		return models.Book{}, apperr.NewInternal("Error deleting book", err)
	}
	return book, nil
}

// ReadCounts tallies how many users saved each title.
func (s *BookService) ReadCounts(ctx context.Context) ([]models.ReadCount, error) {
	counts, err := s.books.ReadCounts(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Error fetching books read count", err)
	}
	return counts, nil
}

func (s *BookService) ownerID(ctx context.Context, userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperr.NewNotFound("User not found")
	}
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return primitive.NilObjectID, err
		}
		return primitive.NilObjectID, apperr.NewInternal("Internal server error", err)
	}
	return user.ID, nil
}
