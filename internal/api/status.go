package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CameraRick/onAir-fanControl/internal/engine"
	"github.com/CameraRick/onAir-fanControl/internal/history"
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
)

type statusResponse struct {
	Engine  engine.State                       `json:"engine"`
	Devices map[string]telemetry.DeviceReading `json:"devices"`
}

type historyResponse struct {
	Stats   history.Stats    `json:"stats"`
	Samples []history.Sample `json:"samples"`
}

func registerStatusEndpoints(rest *echo.Echo, controller Controller, historySource HistorySource) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		return getStatus(c, controller)
	})
	group.GET("/history/", func(c echo.Context) error {
		return getHistory(c, historySource)
	})
}

// returns the current engine state and the last reading per device
func getStatus(c echo.Context, controller Controller) error {
	data := statusResponse{
		Engine:  controller.Snapshot(),
		Devices: telemetry.Readings(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getHistory(c echo.Context, historySource HistorySource) error {
	if historySource == nil {
		return c.JSONPretty(http.StatusNotFound, &Result{
			Name:    "Not found",
			Message: "History recording is disabled",
		}, indentationChar)
	}

	data := historyResponse{
		Stats:   historySource.Stats(),
		Samples: historySource.Samples(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
