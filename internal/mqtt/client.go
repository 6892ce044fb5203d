package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

const (
	statusOnline  = "online"
	statusOffline = "offline"

	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// ErrNotConnected indicates a publish attempt while the broker
// connection is down. The next publish tick retries automatically once
// the client has reconnected.
var ErrNotConnected = errors.New("mqtt client not connected")

// Client wraps the paho client with the connection lifecycle used here:
// auto-reconnect, a retained online/offline status topic and a last-will
// so the broker flips the status to offline on an unclean disconnect.
type Client struct {
	client paho.Client
	config configuration.MqttConfig

	mu            sync.Mutex
	subscriptions map[string]func(payload string)
}

func NewClient(config configuration.MqttConfig) *Client {
	c := &Client{
		config:        config,
		subscriptions: map[string]func(payload string){},
	}

	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetWill(config.Topics.Status, statusOffline, 0, true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			ui.Warning("Lost connection to mqtt broker: %v", err)
		})

	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}

	c.client = paho.NewClient(opts)
	return c
}

func (c *Client) onConnect(client paho.Client) {
	ui.Info("Connected to mqtt broker %s", c.config.Broker)
	client.Publish(c.config.Topics.Status, 0, true, statusOnline)

	// re-establish subscriptions lost by the reconnect
	c.mu.Lock()
	defer c.mu.Unlock()
	for topic, handler := range c.subscriptions {
		c.subscribe(topic, handler)
	}
}

// Connect establishes the broker connection, blocking up to the connect
// timeout.
func (c *Client) Connect() error {
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connecting to mqtt broker %s timed out", c.config.Broker)
	}
	return token.Error()
}

// Disconnect publishes the offline status and closes the connection.
func (c *Client) Disconnect() {
	if c.client.IsConnected() {
		c.client.Publish(c.config.Topics.Status, 0, true, statusOffline).
			WaitTimeout(publishTimeout)
	}
	c.client.Disconnect(250)
}

// Publish sends a retained message to the given topic.
func (c *Client) Publish(topic string, payload string) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("%w: cannot publish to %s", ErrNotConnected, topic)
	}

	token := c.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s timed out", topic)
	}
	return token.Error()
}

// Subscribe registers a handler for the given topic. The subscription
// survives broker reconnects.
func (c *Client) Subscribe(topic string, handler func(payload string)) error {
	c.mu.Lock()
	c.subscriptions[topic] = handler
	c.mu.Unlock()
	return c.subscribe(topic, handler)
}

func (c *Client) subscribe(topic string, handler func(payload string)) error {
	token := c.client.Subscribe(topic, 0, func(_ paho.Client, message paho.Message) {
		handler(string(message.Payload()))
	})
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("subscribing to %s timed out", topic)
	}
	return token.Error()
}
