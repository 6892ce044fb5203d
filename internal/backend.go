package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CameraRick/onAir-fanControl/internal/api"
	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/engine"
	"github.com/CameraRick/onAir-fanControl/internal/history"
	"github.com/CameraRick/onAir-fanControl/internal/mqtt"
	"github.com/CameraRick/onAir-fanControl/internal/statistics"
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Warning("SMART probes usually require root permissions, expect probe failures")
	}

	config := configuration.CurrentConfig
	store := configuration.NewStore(config)

	prober := telemetry.NewSmartctlProber(config.Telemetry.SmartctlBinary, config.Telemetry.ProbeTimeout)
	snapshots := telemetry.NewFileSnapshot(config.Telemetry.SnapshotPath)
	collector := telemetry.NewCollector(prober, snapshots)

	var client *mqtt.Client
	var publisher engine.Publisher
	if config.Mqtt.Broker != "" {
		client = mqtt.NewClient(config.Mqtt)
		if err := client.Connect(); err != nil {
			// the client keeps retrying in the background
			ui.Warning("Cannot connect to mqtt broker yet: %v", err)
		}
		publisher = mqtt.NewStatePublisher(client, store)
	} else {
		ui.Warning("No mqtt broker configured, engine state will not be published")
	}

	fanEngine := engine.NewEngine(store, collector, publisher)

	if client != nil {
		if err := mqtt.RegisterBiasCommands(client, config.Mqtt.Topics, fanEngine); err != nil {
			ui.Warning("Cannot subscribe bias command topics: %v", err)
		}
	}

	var recorder *history.Recorder
	if config.History.Enabled {
		recorder = history.NewRecorder(config.History, func() (*float64, int) {
			state := fanEngine.Snapshot()
			return state.MaxTemp, state.LiveDuty
		})
		if err := recorder.Init(); err != nil {
			ui.Error("Cannot initialize history recorder (%s)", err.Error())
			recorder = nil
		}
	}

	if config.Statistics.Enabled {
		statistics.Register(statistics.NewEngineCollector(fanEngine))
		statistics.Register(statistics.NewDeviceCollector())
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := config.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := config.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				http.Handle(endpoint, handler)
				server := &http.Server{Addr: addr, Handler: handler}
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return server.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		// === control loop
		g.Add(func() error {
			err := fanEngine.RunPollLoop(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})

		// === publish loop
		g.Add(func() error {
			err := fanEngine.RunPublishLoop(ctx)
			ui.Info("Publish loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		// === history recorder
		if recorder != nil {
			rec := recorder
			g.Add(func() error {
				err := rec.Run(ctx)
				ui.Info("History recorder stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error recording history: %v", err)
				}
			})
		}
	}
	{
		// === REST api
		if config.Api.Enabled {
			var historySource api.HistorySource
			if recorder != nil {
				historySource = recorder
			}
			restService := api.CreateRestService(store, fanEngine, historySource)

			g.Add(func() error {
				addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
				if err := restService.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start rest api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping rest api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := restService.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping rest api: %v", err)
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	err := g.Run()
	if client != nil {
		client.Disconnect()
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(stdout))
}
