package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"linksclub_backend/internals/configs"
	"linksclub_backend/internals/features/users/model"
	helper "linksclub_backend/internals/helpers"
)

var validate = validator.New()

type AuthHandler struct {
	DB *gorm.DB
}

type loginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login (POST /api/login)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if configs.JWTSecret == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "JWT secret not configured")
	}

	var u model.UserModel
	if err := h.DB.First(&u, "user_email = ? AND user_is_active = TRUE", in.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(in.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.UserID.String(),
		"name": u.UserName,
		"role": u.UserRole,
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "could not sign token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    signed,
		Expires:  now.Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.JsonOK(c, "login ok", fiber.Map{
		"access_token": signed,
		"user": fiber.Map{
			"user_id":   u.UserID,
			"user_name": u.UserName,
			"user_role": u.UserRole,
		},
	})
}

// Me (GET /api/a/me)
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", fiber.Map{
		"user_id":   c.Locals("user_id"),
		"user_name": c.Locals("user_name"),
		"role":      c.Locals("role"),
	})
}
