package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/engine"
	"github.com/CameraRick/onAir-fanControl/internal/history"
)

const (
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Controller is the slice of the engine the REST service drives.
type Controller interface {
	Snapshot() engine.State
	SetBias(bias int) error
	ResetBias()
}

// HistorySource serves the recorded sample window. Nil when history is
// disabled.
type HistorySource interface {
	Samples() []history.Sample
	Stats() history.Stats
}

func CreateRestService(store *configuration.Store, controller Controller, historySource HistorySource) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())

	// request metrics end up in the same registry the statistics server
	// exposes; only meaningful while that server runs
	if store.Snapshot().Statistics.Enabled {
		echoRest.Use(echoprometheus.NewMiddleware("onair_fancontrol_api"))
	}

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest, controller, historySource)
	registerConfigEndpoints(echoRest, store)
	registerBiasEndpoints(echoRest, controller)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
