package mqtt

import (
	"errors"
	"strconv"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/engine"
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
)

// topicPublisher is the slice of Client the state publisher needs.
type topicPublisher interface {
	Publish(topic string, payload string) error
}

// StatePublisher maps engine state onto the retained scalar topic tree.
// Every value lives on its own topic so that dumb consumers (dashboards,
// the fan hardware itself) can subscribe to exactly the one value they
// need without parsing anything.
type StatePublisher struct {
	client topicPublisher
	store  *configuration.Store
}

func NewStatePublisher(client topicPublisher, store *configuration.Store) *StatePublisher {
	return &StatePublisher{
		client: client,
		store:  store,
	}
}

// Publish pushes one engine state onto the topic tree. All topics are
// attempted even when some fail, so a partial outage degrades instead of
// going dark.
func (p *StatePublisher) Publish(state engine.State) error {
	config := p.store.Snapshot()
	topics := config.Mqtt.Topics

	var errs []error
	publish := func(topic string, payload string) {
		if topic == "" {
			return
		}
		if err := p.client.Publish(topic, payload); err != nil {
			errs = append(errs, err)
		}
	}

	publish(topics.LiveDuty, dutyPayload(state.LiveDuty, state.PoweredOff))
	publish(topics.TargetDuty, dutyPayload(state.TargetDuty, state.PoweredOff))
	publish(topics.MinDuty, strconv.Itoa(config.Limits.MinDuty))
	publish(topics.MaxDuty, strconv.Itoa(config.Limits.MaxDuty))
	publish(topics.MaxTemp, tempPayload(state.MaxTemp))
	publish(topics.TempSource, string(state.SourceKind))
	publish(topics.TempDevice, state.SourceDevice)
	publish(topics.SpinningDisks, strconv.Itoa(state.ActiveCount))
	publish(topics.Bias, strconv.Itoa(state.Bias))
	publish(topics.BiasLimit, strconv.Itoa(config.Limits.BiasLimit))
	publish(topics.UpdatedAt, strconv.FormatInt(state.UpdatedAt.Unix(), 10))

	// heartbeat; the broker's last-will flips this to offline when the
	// engine dies uncleanly
	publish(topics.Status, statusOnline)

	if topics.StandbyPrefix != "" {
		for device, reading := range telemetry.Readings() {
			publish(topics.StandbyPrefix+"/"+device, standbyPayload(reading))
		}
	}

	return errors.Join(errs...)
}

// dutyPayload renders a duty percentage, or the power-off sentinel while
// the spin-down override requests the fan to be cut entirely.
func dutyPayload(duty int, poweredOff bool) string {
	if poweredOff {
		return string(configuration.SpinDownPowerOff)
	}
	return strconv.Itoa(duty)
}

// tempPayload renders a temperature, or an empty payload while no value
// is known. Retained empty payloads clear the topic on most brokers.
func tempPayload(temp *float64) string {
	if temp == nil {
		return ""
	}
	return strconv.FormatFloat(*temp, 'f', -1, 64)
}

func standbyPayload(reading telemetry.DeviceReading) string {
	if reading.PowerState == telemetry.PowerStateStandby {
		return "1"
	}
	return "0"
}
