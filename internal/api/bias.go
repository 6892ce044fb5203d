package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CameraRick/onAir-fanControl/internal/engine"
)

type biasRequest struct {
	Bias int `json:"bias"`
}

type biasResponse struct {
	Bias int `json:"bias"`
}

func registerBiasEndpoints(rest *echo.Echo, controller Controller) {
	group := rest.Group("/bias")

	group.GET("/", func(c echo.Context) error {
		return getBias(c, controller)
	})
	group.PUT("/", func(c echo.Context) error {
		return putBias(c, controller)
	})
	group.DELETE("/", func(c echo.Context) error {
		return deleteBias(c, controller)
	})
}

func getBias(c echo.Context, controller Controller) error {
	return c.JSONPretty(http.StatusOK, biasResponse{Bias: controller.Snapshot().Bias}, indentationChar)
}

// applies a manual duty offset, bounded by the configured bias window
func putBias(c echo.Context, controller Controller) error {
	var request biasRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}

	if err := controller.SetBias(request.Bias); err != nil {
		if errors.Is(err, engine.ErrBiasOutOfRange) {
			return returnBadRequest(c, err)
		}
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, biasResponse{Bias: request.Bias}, indentationChar)
}

// clears any manual duty offset
func deleteBias(c echo.Context, controller Controller) error {
	controller.ResetBias()
	return c.NoContent(http.StatusNoContent)
}
