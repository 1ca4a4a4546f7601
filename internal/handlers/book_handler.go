package handlers

import (
	"github.com/arzan03/BookNook/internal/middleware"
	"github.com/arzan03/BookNook/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// SaveBook adds a book to the caller's collection.
func (h *Handler) SaveBook(c *fiber.Ctx) error {
	var request services.BookInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := h.books.SaveBook(ctx, middleware.UserID(c), request)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Book saved successfully",
		"book":    book,
	})
}

func (h *Handler) ListBooks(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	books, err := h.books.ListBooks(ctx, middleware.UserID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(books)
}

// DeleteBook removes one of the caller's books.
func (h *Handler) DeleteBook(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := h.books.DeleteBook(ctx, middleware.UserID(c), utils.CopyString(c.Params("id")))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Book deleted successfully",
		"book":    book,
	})
}

// ReadCounts is public: the number of users who saved each title.
func (h *Handler) ReadCounts(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	counts, err := h.books.ReadCounts(ctx)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(counts)
}

func (h *Handler) ExportCollection(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.exports.ExportCollection(ctx, middleware.UserID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(result)
}
