package services

import (
	"context"
	"strings"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/models"
	"github.com/arzan03/BookNook/internal/utils"
)

type CommentInput struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

// CommentService manages public comments keyed by OpenLibrary work id.
type CommentService struct {
	comments db.CommentStore
}

func NewCommentService(comments db.CommentStore) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) ListComments(ctx context.Context, catalogID string) ([]models.Comment, error) {
	catalogID = strings.TrimSpace(catalogID)
	if catalogID == "" {
		return nil, apperr.NewValidation("Book id is required")
	}
	comments, err := s.comments.ListComments(ctx, catalogID)
	if err != nil {
		return nil, apperr.NewInternal("Error fetching comments", err)
	}
	return comments, nil
}

// AddComment stores a rated comment. Nothing is written when validation fails.
func (s *CommentService) AddComment(ctx context.Context, catalogID string, in CommentInput) (models.Comment, error) {
	catalogID = strings.TrimSpace(catalogID)
	in.Username = strings.TrimSpace(in.Username)
	in.Content = strings.TrimSpace(in.Content)

	if catalogID == "" {
		return models.Comment{}, apperr.NewValidation("All fields are required")
	}
	if fe := utils.Validate(in); fe != nil {
		if fe.Field == "Rating" && fe.Tag != "required" {
			return models.Comment{}, apperr.NewValidation("Rating must be between 1 and 5")
		}
		return models.Comment{}, apperr.NewValidation("All fields are required")
	}

	comment := models.Comment{
		OpenLibraryBookID: catalogID,
		Username:          in.Username,
		Content:           in.Content,
		Rating:            in.Rating,
	}
	if err := s.comments.InsertComment(ctx, &comment); err != nil {
		return models.Comment{}, apperr.NewInternal("Error adding comment", err)
	}
	return comment, nil
}
