package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
)

func registerConfigEndpoints(rest *echo.Echo, store *configuration.Store) {
	group := rest.Group("/config")

	group.GET("/", func(c echo.Context) error {
		return getConfig(c, store)
	})
	group.PUT("/", func(c echo.Context) error {
		return putConfig(c, store)
	})
}

// returns the currently active configuration
func getConfig(c echo.Context, store *configuration.Store) error {
	return c.JSONPretty(http.StatusOK, store.Snapshot(), indentationChar)
}

// replaces the active configuration; the swap is atomic and only
// happens when the submitted configuration validates
func putConfig(c echo.Context, store *configuration.Store) error {
	next := store.Snapshot()
	if err := c.Bind(&next); err != nil {
		return returnBadRequest(c, err)
	}

	if err := store.Swap(next); err != nil {
		if errors.Is(err, configuration.ErrInvalidConfig) {
			return returnBadRequest(c, err)
		}
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, store.Snapshot(), indentationChar)
}
