package handlers

import (
	"context"

	"github.com/arzan03/BookNook/internal/middleware"
	"github.com/arzan03/BookNook/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Deps are the collaborators the routes are built from. Limiter may be nil.
type Deps struct {
	Auth     *services.AuthService
	Books    *services.BookService
	Comments *services.CommentService
	Contacts *services.ContactService
	Exports  *services.ExportService
	Tokens   middleware.SessionVerifier
	Limiter  middleware.Limiter
	Ping     func(ctx context.Context) error
	Logger   *zap.Logger
}

// RegisterRoutes mounts the API on app.
func RegisterRoutes(app *fiber.App, d Deps) {
	h := &Handler{
		auth:     d.Auth,
		books:    d.Books,
		comments: d.Comments,
		contacts: d.Contacts,
		exports:  d.Exports,
		ping:     d.Ping,
		logger:   d.Logger,
	}

	guard := middleware.AuthMiddleware(d.Tokens)
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if d.Limiter != nil {
		limit = middleware.RateLimit(d.Limiter, d.Logger)
	}

	app.Get("/healthz", h.Health)

	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/signup", limit, h.Signup)
	auth.Post("/login", limit, h.Login)
	auth.Get("/profile", guard, h.Profile)
	auth.Post("/forgot-password", limit, h.ForgotPassword)
	auth.Post("/reset-password/:token", limit, h.ResetPassword)

	// Book Routes
	api.Get("/books/read-count", h.ReadCounts)
	api.Get("/books/export", guard, h.ExportCollection)
	api.Post("/books", guard, h.SaveBook)
	api.Get("/books", guard, h.ListBooks)
	api.Delete("/books/:id", guard, h.DeleteBook)

	// Comments are public and keyed by OpenLibrary work id
	api.Get("/books/:openLibraryBookId/comment", h.ListComments)
	api.Post("/books/:openLibraryBookId/comment", h.AddComment)

	api.Post("/contact", h.SubmitContact)
}
