package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docmanage/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateRegister(req registerRequest) []fieldError {
	var details []fieldError
	if strings.TrimSpace(req.Username) == "" {
		details = append(details, fieldError{Field: "username", Message: "username is required"})
	}
	if strings.TrimSpace(req.Email) == "" {
		details = append(details, fieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(req.Email, "@") {
		details = append(details, fieldError{Field: "email", Message: "email is not a valid address"})
	}
	if req.Password == "" {
		details = append(details, fieldError{Field: "password", Message: "password is required"})
	}
	return details
}

// Register creates a new user account with the "user" role.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeValidationError(c, []fieldError{{Field: "body", Message: "invalid request body"}})
		}
		if details := validateRegister(req); len(details) > 0 {
			return writeValidationError(c, details)
		}

		user, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login verifies credentials and returns an access/refresh token pair.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeValidationError(c, []fieldError{{Field: "body", Message: "invalid request body"}})
		}

		var details []fieldError
		if strings.TrimSpace(req.Email) == "" {
			details = append(details, fieldError{Field: "email", Message: "email is required"})
		}
		if req.Password == "" {
			details = append(details, fieldError{Field: "password", Message: "password is required"})
		}
		if len(details) > 0 {
			return writeValidationError(c, details)
		}

		pair, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(pair)
	}
}
