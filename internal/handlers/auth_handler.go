package handlers

import (
	"github.com/arzan03/BookNook/internal/middleware"
	"github.com/arzan03/BookNook/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

func (h *Handler) Signup(c *fiber.Ctx) error {
	var request services.SignupInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.auth.Signup(ctx, request); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var request struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token, err := h.auth.Login(ctx, request.Identifier, request.Password)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Login successful", "token": token})
}

func (h *Handler) Profile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.auth.Profile(ctx, middleware.UserID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var request struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.auth.ForgotPassword(ctx, request.Email); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset email sent"})
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var request struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.auth.ResetPassword(ctx, utils.CopyString(c.Params("token")), request.Password); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password successfully updated"})
}
