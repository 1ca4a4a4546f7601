package services

import (
	"context"
	"strings"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/models"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactService struct {
	contacts db.ContactStore
}

func NewContactService(contacts db.ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

// Submit stores a contact form message as received.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	contact := models.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.contacts.InsertContact(ctx, &contact); err != nil {
		return apperr.NewInternal("An error occurred while saving the message.", err)
	}
	return nil
}
