package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

// RequireAdmin aborts requests whose role claim is not the admin role.
// It assumes RequireSignIn already extracted the role into the context.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(int)
		if !ok || role != model.RoleAdmin {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "UnAuthorized Access",
			})
		}
		return next(c)
	}
}
