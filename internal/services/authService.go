package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/models"
	"github.com/arzan03/BookNook/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// ResetMailer delivers password reset links.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type SignupInput struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Profile is the user record as returned to its owner.
type Profile struct {
	models.User
	SavedBooks int64  `json:"savedBooks"`
	Message    string `json:"message"`
}

type AuthService struct {
	users       db.UserStore
	books       db.BookStore
	tokens      *TokenIssuer
	mailer      ResetMailer
	frontendURL string
	logger      *zap.Logger
}

func NewAuthService(users db.UserStore, books db.BookStore, tokens *TokenIssuer, mailer ResetMailer, frontendURL string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		books:       books,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

// Signup registers a new user. The email must not be in use yet.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if fe := utils.Validate(in); fe != nil {
		return models.User{}, apperr.NewValidation("All fields (username, email, password, confirm password) are required")
	}
	if in.Password != in.ConfirmPassword {
		return models.User{}, apperr.NewValidation("Passwords do not match")
	}

	_, err := s.users.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return models.User{}, apperr.NewConflict("User with this email already exists")
	case !errors.Is(err, apperr.ErrNotFound):
		return models.User{}, apperr.NewInternal("Internal server error", err)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return models.User{}, apperr.NewInternal("Internal server error", fmt.Errorf("hash password: %w", err))
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		return models.User{}, apperr.NewInternal("Internal server error", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	return user, nil
}

// Login checks the identifier (username or email) and password and returns a session token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", apperr.NewUnauthorized("Invalid credentials")
	}

	user, err := s.users.FindUserByIdentifier(ctx, identifier)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return "", apperr.NewInternal("Internal server error", err)
	}

	if !VerifyPassword(password, user.Password) {
		return "", apperr.NewUnauthorized("Invalid credentials")
	}

	token, err := s.tokens.IssueSession(user.ID.Hex())
	if err != nil {
		return "", err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("Failed to record last login", zap.Error(err), zap.String("user_id", user.ID.Hex()))
	}
	return token, nil
}

// Profile loads the user and the size of their collection concurrently.
func (s *AuthService) Profile(ctx context.Context, userID string) (Profile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return Profile{}, apperr.NewNotFound("User not found")
	}

	var (
		user  models.User
		count int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.FindUserByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.books.CountBooksByOwner(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Profile{}, err
		}
		return Profile{}, apperr.NewInternal("Internal server error", err)
	}

	return Profile{
		User:       user,
		SavedBooks: count,
		Message:    fmt.Sprintf("Welcome, %s!", user.Username),
	}, nil
}

// ForgotPassword mails a one-hour reset link to a registered email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.NewValidation("Email is required")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.NewInternal("An error occurred", err)
	}

	token, err := s.tokens.IssueReset(user.Email)
	if err != nil {
		return err
	}

	link := s.frontendURL + "/reset-password/" + token
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		return apperr.NewInternal("Failed to send password reset email", err)
	}

	s.logger.Info("Password reset requested", zap.String("user_id", user.ID.Hex()))
	return nil
}

// ResetPassword replaces the password of the user named by a valid reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	email, err := s.tokens.VerifyReset(token)
	if err != nil {
		if apperr.KindOf(err) == apperr.Expired {
			return apperr.Wrap(apperr.Expired, "Reset token has expired", err)
		}
		return apperr.Wrap(apperr.Validation, "Invalid reset token", err)
	}
	if password == "" {
		return apperr.NewValidation("Password is required")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.NewInternal("An error occurred", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return apperr.NewInternal("An error occurred", fmt.Errorf("hash password: %w", err))
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.NewInternal("An error occurred", err)
	}

	s.logger.Info("Password reset", zap.String("user_id", user.ID.Hex()))
	return nil
}
