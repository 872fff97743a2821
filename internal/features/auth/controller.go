package auth

import (
	"errors"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
	validate    *validator.Validate
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
		validate:    validator.New(),
	}
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninResponse struct {
	AccessToken string `json:"accessToken"`
}

func (c *AuthController) Signin(ctx *fiber.Ctx) error {
	var req SigninRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(models.ErrBadRequest("Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(models.ErrBadRequest("username and password are required"))
	}

	token, err := c.AuthService.Signin(ctx.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(models.ErrUnauthorized())
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(SigninResponse{AccessToken: token})
}
