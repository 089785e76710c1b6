package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Every response body is a flat JSON object with a boolean success
// flag and a message; clients branch on the flag, not only on the
// status code. 500-tier bodies additionally echo the underlying error
// string for operator diagnosis.

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func failErr(c echo.Context, status int, message string, err error) error {
	return c.JSON(status, echo.Map{"success": false, "message": message, "error": err.Error()})
}

// getUserID extracts the authenticated user id placed in the context
// by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id style route parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil
}
