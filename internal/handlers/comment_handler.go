package handlers

import (
	"github.com/arzan03/BookNook/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// bookKey copies the catalog id out of the request buffer, which fasthttp reuses.
func bookKey(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("openLibraryBookId"))
}

func (h *Handler) ListComments(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := h.comments.ListComments(ctx, bookKey(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(comments)
}

func (h *Handler) AddComment(c *fiber.Ctx) error {
	var request services.CommentInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.comments.AddComment(ctx, bookKey(c), request)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}
