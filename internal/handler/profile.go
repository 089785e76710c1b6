package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/auth"
	"github.com/iliyamo/ecommerce-api/internal/repository"
	"github.com/iliyamo/ecommerce-api/internal/validate"
)

type profileReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateProfile handles PUT /api/v1/auth/profile. Every field is
// optional; a blank field keeps the stored value, and the password is
// rehashed only when one was supplied. The user is loaded before the
// password policy runs, so an unknown user is always a 404.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Error while updating profile")
	}

	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error while updating profile", err)
	}

	if err := validate.ProfilePassword(req.Password); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = u.Name
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = u.Phone
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		address = u.Address
	}
	passwordHash := u.PasswordHash
	if req.Password != "" {
		passwordHash, err = auth.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			h.Log.Error("password hash failed", zap.Error(err))
			return failErr(c, http.StatusBadRequest, "Error while updating profile", err)
		}
	}

	updated, err := h.Users.UpdateProfile(ctx, userID, name, passwordHash, phone, address)
	if err != nil {
		h.Log.Error("profile update failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error while updating profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "Profile updated successfully",
		"updatedUser": updated,
	})
}
