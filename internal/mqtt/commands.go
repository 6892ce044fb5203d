package mqtt

import (
	"strconv"
	"strings"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

// BiasController is the slice of the engine the command topics drive.
type BiasController interface {
	SetBias(bias int) error
	ResetBias()
}

// subscriber is the slice of Client command registration needs.
type subscriber interface {
	Subscribe(topic string, handler func(payload string)) error
}

// RegisterBiasCommands subscribes the bias command topics and routes
// them to the controller. Malformed or out-of-range payloads are logged
// and dropped; remote commands must never crash the engine.
func RegisterBiasCommands(client subscriber, topics configuration.TopicsConfig, controller BiasController) error {
	if topics.BiasSet != "" {
		err := client.Subscribe(topics.BiasSet, func(payload string) {
			handleBiasSet(controller, payload)
		})
		if err != nil {
			return err
		}
	}

	if topics.BiasReset != "" {
		err := client.Subscribe(topics.BiasReset, func(payload string) {
			controller.ResetBias()
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func handleBiasSet(controller BiasController, payload string) {
	bias, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		ui.Warning("Ignoring bias command with malformed payload %q", payload)
		return
	}
	if err := controller.SetBias(bias); err != nil {
		ui.Warning("Ignoring bias command: %v", err)
	}
}
