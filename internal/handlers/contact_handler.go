package handlers

import (
	"github.com/arzan03/BookNook/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) SubmitContact(c *fiber.Ctx) error {
	var request services.ContactInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.contacts.Submit(ctx, request); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Message received and stored successfully!"})
}
