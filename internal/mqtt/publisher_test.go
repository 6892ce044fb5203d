package mqtt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/engine"
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
)

type fakeTopicPublisher struct {
	published map[string]string
	failAll   bool
}

func (f *fakeTopicPublisher) Publish(topic string, payload string) error {
	if f.failAll {
		return errors.New("broker gone")
	}
	if f.published == nil {
		f.published = map[string]string{}
	}
	f.published[topic] = payload
	return nil
}

func publisherConfig() configuration.Configuration {
	return configuration.Configuration{
		Curve: configuration.CurveConfig{
			Mode:   configuration.CurveModeLinear,
			Points: []configuration.CurvePointConfig{{Temp: 30, Duty: 20}, {Temp: 50, Duty: 80}},
		},
		Limits: configuration.LimitsConfig{
			MinDuty:   25,
			MaxDuty:   100,
			BiasLimit: 25,
		},
		Mqtt: configuration.MqttConfig{
			Topics: configuration.TopicsConfig{
				LiveDuty:      "hdds/duty/live",
				TargetDuty:    "hdds/duty/target",
				MinDuty:       "hdds/duty/min",
				MaxDuty:       "hdds/duty/max",
				MaxTemp:       "hdds/temp/max",
				TempSource:    "hdds/temp/source",
				TempDevice:    "hdds/temp/device",
				SpinningDisks: "hdds/spinning",
				Bias:          "hdds/bias",
				BiasLimit:     "hdds/bias/limit",
				UpdatedAt:     "hdds/updated",
				Status:        "hdds/status",
			},
		},
	}
}

func tempPtr(value float64) *float64 {
	return &value
}

func TestStatePublisherPublishesScalarTopics(t *testing.T) {
	// GIVEN
	client := &fakeTopicPublisher{}
	publisher := NewStatePublisher(client, configuration.NewStore(publisherConfig()))

	state := engine.State{
		LiveDuty:     45,
		TargetDuty:   50,
		Bias:         5,
		MaxTemp:      tempPtr(41.5),
		SourceDevice: "sdb",
		SourceKind:   telemetry.ReadingSourceLiveProbe,
		ActiveCount:  3,
		UpdatedAt:    time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}

	// WHEN
	err := publisher.Publish(state)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "45", client.published["hdds/duty/live"])
	assert.Equal(t, "50", client.published["hdds/duty/target"])
	assert.Equal(t, "25", client.published["hdds/duty/min"])
	assert.Equal(t, "100", client.published["hdds/duty/max"])
	assert.Equal(t, "41.5", client.published["hdds/temp/max"])
	assert.Equal(t, "live-probe", client.published["hdds/temp/source"])
	assert.Equal(t, "sdb", client.published["hdds/temp/device"])
	assert.Equal(t, "3", client.published["hdds/spinning"])
	assert.Equal(t, "5", client.published["hdds/bias"])
	assert.Equal(t, "25", client.published["hdds/bias/limit"])
	assert.Equal(t, "1787572800", client.published["hdds/updated"])
	assert.Equal(t, "online", client.published["hdds/status"])
}

func TestStatePublisherPowerOffSentinel(t *testing.T) {
	// GIVEN
	client := &fakeTopicPublisher{}
	publisher := NewStatePublisher(client, configuration.NewStore(publisherConfig()))

	// WHEN
	err := publisher.Publish(engine.State{PoweredOff: true})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "off", client.published["hdds/duty/live"])
	assert.Equal(t, "off", client.published["hdds/duty/target"])
}

func TestStatePublisherClearsUnknownTemperature(t *testing.T) {
	// GIVEN
	client := &fakeTopicPublisher{}
	publisher := NewStatePublisher(client, configuration.NewStore(publisherConfig()))

	// WHEN
	err := publisher.Publish(engine.State{MaxTemp: nil})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "", client.published["hdds/temp/max"])
}

func TestStatePublisherPerDeviceStandbyTopics(t *testing.T) {
	// GIVEN
	config := publisherConfig()
	config.Mqtt.Topics.StandbyPrefix = "hdds/standby"
	client := &fakeTopicPublisher{}
	publisher := NewStatePublisher(client, configuration.NewStore(config))

	telemetry.StoreReading(telemetry.DeviceReading{
		Device:     "sda",
		PowerState: telemetry.PowerStateStandby,
		Media:      telemetry.MediaRotational,
	})
	telemetry.StoreReading(telemetry.DeviceReading{
		Device:      "sdb",
		Temperature: tempPtr(40),
		PowerState:  telemetry.PowerStateActive,
		Media:       telemetry.MediaRotational,
	})

	// WHEN
	err := publisher.Publish(engine.State{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "1", client.published["hdds/standby/sda"])
	assert.Equal(t, "0", client.published["hdds/standby/sdb"])
}

func TestStatePublisherReportsBrokerFailure(t *testing.T) {
	// GIVEN
	client := &fakeTopicPublisher{failAll: true}
	publisher := NewStatePublisher(client, configuration.NewStore(publisherConfig()))

	// WHEN
	err := publisher.Publish(engine.State{})

	// THEN
	assert.Error(t, err)
}
