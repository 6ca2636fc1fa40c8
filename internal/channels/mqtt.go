package channels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTT topic layout. Clients publish requests to skydeck/req/<client-id> and
// receive responses on skydeck/resp/<client-id>.
const (
	requestTopicFilter = "skydeck/req/+"
	responseTopicFmt   = "skydeck/resp/%s"
)

// MQTTClient is the subset of the paho client the channel uses. It exists so
// tests can substitute a fake broker connection.
type MQTTClient interface {
	Connect() mqtt.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	IsConnected() bool
}

// defaultMQTTClient wraps the real paho client.
type defaultMQTTClient struct {
	client mqtt.Client
}

func (d *defaultMQTTClient) Connect() mqtt.Token        { return d.client.Connect() }
func (d *defaultMQTTClient) Disconnect(quiesce uint)    { d.client.Disconnect(quiesce) }
func (d *defaultMQTTClient) IsConnected() bool          { return d.client.IsConnected() }
func (d *defaultMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	return d.client.Publish(topic, qos, retained, payload)
}
func (d *defaultMQTTClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	return d.client.Subscribe(topic, qos, callback)
}

// MQTTChannel bridges the RPC protocol onto an MQTT broker for callers that
// already live on a message bus.
type MQTTChannel struct {
	broker   string
	port     int
	username string
	password string
	clientID string
	handler  *Handler
	logger   *slog.Logger
	client   MQTTClient

	ctx    context.Context
	cancel context.CancelFunc

	// clientFactory allows tests to inject a fake broker connection.
	clientFactory func(opts *mqtt.ClientOptions) MQTTClient
}

// NewMQTT creates an MQTT channel adapter.
func NewMQTT(broker string, port int, username, password string, handler *Handler, logger *slog.Logger) *MQTTChannel {
	ctx, cancel := context.WithCancel(context.Background())
	return &MQTTChannel{
		broker:   broker,
		port:     port,
		username: username,
		password: password,
		clientID: "skydeck-" + uuid.NewString()[:8],
		handler:  handler,
		logger:   logger.With("channel", "mqtt"),
		ctx:      ctx,
		cancel:   cancel,
		clientFactory: func(opts *mqtt.ClientOptions) MQTTClient {
			return &defaultMQTTClient{client: mqtt.NewClient(opts)}
		},
	}
}

// Start connects to the broker and subscribes to the request topic.
func (c *MQTTChannel) Start(_ context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", c.broker, c.port)).
		SetClientID(c.clientID).
		SetAutoReconnect(true)
	if c.username != "" {
		opts.SetUsername(c.username)
		opts.SetPassword(c.password)
	}

	c.client = c.clientFactory(opts)
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}

	if token := c.client.Subscribe(requestTopicFilter, 1, c.onRequest); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}

	c.logger.Info("mqtt channel started", "broker", c.broker, "port", c.port, "client_id", c.clientID)
	return nil
}

// Stop disconnects from the broker.
func (c *MQTTChannel) Stop() error {
	c.cancel()
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(250)
	}
	c.logger.Info("mqtt channel stopped")
	return nil
}

// onRequest answers one request frame; the caller identity is the last topic
// segment and selects the response topic.
func (c *MQTTChannel) onRequest(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	callerID := parts[len(parts)-1]
	if callerID == "" {
		c.logger.Warn("request on malformed topic", "topic", msg.Topic())
		return
	}

	resp := c.handler.Handle(c.ctx, msg.Payload())
	if resp == nil {
		return
	}

	topic := fmt.Sprintf(responseTopicFmt, callerID)
	if token := c.client.Publish(topic, 1, false, resp); token.Wait() && token.Error() != nil {
		c.logger.Warn("publish response failed", "topic", topic, "error", token.Error())
	}
}
