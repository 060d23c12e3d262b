package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/version"
)

// Health reports service liveness
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}
