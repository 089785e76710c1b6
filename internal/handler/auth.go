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
	"github.com/iliyamo/ecommerce-api/internal/config"
	"github.com/iliyamo/ecommerce-api/internal/model"
	"github.com/iliyamo/ecommerce-api/internal/repository"
	"github.com/iliyamo/ecommerce-api/internal/validate"
)

// AuthHandler bundles dependencies for registration, login, the
// forgot-password flow and profile updates.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
	Log   *zap.Logger
}

func NewAuthHandler(cfg config.Config, users UserStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordReq struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

// Register creates a new customer account. An already-registered email
// answers 200 with success:false, a long-standing contract quirk the
// storefront client branches on.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Name is required")
	}
	if err := validate.Register(validate.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	}); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return fail(c, http.StatusOK, "Already registered, please log in")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		h.Log.Error("register lookup failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in registration", err)
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in registration", err)
	}

	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Answer:       strings.TrimSpace(req.Answer),
		Role:         model.RoleCustomer,
	}
	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusOK, "Already registered, please log in")
		}
		h.Log.Error("register create failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in registration", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    u,
	})
}

// Login verifies credentials and returns the user with a fresh access
// token. A wrong password answers 200 with success:false (contract
// quirk); an unknown email is a 404.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusNotFound, "Invalid email or password")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fail(c, http.StatusNotFound, "Invalid email or password")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "Email is not registered")
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in login", err)
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusOK, "Invalid password")
	}

	token, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in login", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "login successfully",
		"user":    u,
		"token":   token.Token,
	})
}

// ForgotPassword resets the password for a matching email + security
// answer pair.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Email is required")
	}
	switch {
	case strings.TrimSpace(req.Email) == "":
		return fail(c, http.StatusBadRequest, "Email is required")
	case strings.TrimSpace(req.Answer) == "":
		return fail(c, http.StatusBadRequest, "Answer is required")
	case req.NewPassword == "":
		return fail(c, http.StatusBadRequest, "New password is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmailAndAnswer(ctx, req.Email, strings.TrimSpace(req.Answer))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "Wrong email or answer")
		}
		h.Log.Error("forgot-password lookup failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Something went wrong", err)
	}

	hash, err := auth.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Something went wrong", err)
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		h.Log.Error("password reset failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Something went wrong", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password reset successfully",
	})
}

// Test is the admin smoke-test endpoint.
func (h *AuthHandler) Test(c echo.Context) error {
	return c.String(http.StatusOK, "Protected Routes")
}

// UserAuth lets the client verify a customer session.
func (h *AuthHandler) UserAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// AdminAuth lets the client verify an admin session.
func (h *AuthHandler) AdminAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
