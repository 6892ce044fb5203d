package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/engine"
)

type fakeSubscriber struct {
	handlers map[string]func(payload string)
}

func (f *fakeSubscriber) Subscribe(topic string, handler func(payload string)) error {
	if f.handlers == nil {
		f.handlers = map[string]func(payload string){}
	}
	f.handlers[topic] = handler
	return nil
}

func (f *fakeSubscriber) receive(topic string, payload string) {
	f.handlers[topic](payload)
}

type fakeBiasController struct {
	bias  int
	err   error
	reset bool
}

func (f *fakeBiasController) SetBias(bias int) error {
	if f.err != nil {
		return f.err
	}
	f.bias = bias
	return nil
}

func (f *fakeBiasController) ResetBias() {
	f.reset = true
}

func commandTopics() configuration.TopicsConfig {
	return configuration.TopicsConfig{
		BiasSet:   "hdds/bias/set",
		BiasReset: "hdds/bias/reset",
	}
}

func TestBiasSetCommand(t *testing.T) {
	// GIVEN
	client := &fakeSubscriber{}
	controller := &fakeBiasController{}
	err := RegisterBiasCommands(client, commandTopics(), controller)
	assert.NoError(t, err)

	// WHEN
	client.receive("hdds/bias/set", " -10 ")

	// THEN
	assert.Equal(t, -10, controller.bias)
}

func TestBiasSetCommandIgnoresMalformedPayload(t *testing.T) {
	// GIVEN
	client := &fakeSubscriber{}
	controller := &fakeBiasController{bias: 5}
	assert.NoError(t, RegisterBiasCommands(client, commandTopics(), controller))

	// WHEN
	client.receive("hdds/bias/set", "lots")

	// THEN
	assert.Equal(t, 5, controller.bias)
}

func TestBiasSetCommandIgnoresRejectedBias(t *testing.T) {
	// GIVEN
	client := &fakeSubscriber{}
	controller := &fakeBiasController{err: engine.ErrBiasOutOfRange}
	assert.NoError(t, RegisterBiasCommands(client, commandTopics(), controller))

	// WHEN
	client.receive("hdds/bias/set", "200")

	// THEN
	assert.Equal(t, 0, controller.bias)
}

func TestBiasResetCommand(t *testing.T) {
	// GIVEN
	client := &fakeSubscriber{}
	controller := &fakeBiasController{}
	assert.NoError(t, RegisterBiasCommands(client, commandTopics(), controller))

	// WHEN
	client.receive("hdds/bias/reset", "")

	// THEN
	assert.True(t, controller.reset)
}
