package link

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"greenhouse_control/internal/logger"
)

// MQTTConfig describes the broker mirror of the mobile link.
type MQTTConfig struct {
	Broker         string
	ClientID       string
	TelemetryTopic string
	CommandTopic   string
}

// MQTT publishes telemetry frames to a topic and feeds frames from the
// command topic back into the controller.
type MQTT struct {
	client  paho.Client
	cfg     MQTTConfig
	onFrame Handler
	log     *logger.Logger

	mu     sync.Mutex
	status Status
}

// DialMQTT connects to the broker. The client reconnects on its own and
// resubscribes on every connect. An unreachable broker is not an error: the
// link stays Disconnected while the client keeps retrying.
func DialMQTT(cfg MQTTConfig, onFrame Handler, log *logger.Logger) (*MQTT, error) {
	m := &MQTT{cfg: cfg, onFrame: onFrame, log: log, status: Disconnected}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(m.onConnect).
		SetConnectionLostHandler(m.onConnectionLost)

	m.client = paho.NewClient(opts)
	token := m.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		if log != nil {
			log.Warnw("mqtt_connect_pending", "broker", cfg.Broker)
		}
		return m, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return m, nil
}

func (m *MQTT) onConnect(c paho.Client) {
	m.setStatus(Connected)
	if m.cfg.CommandTopic == "" {
		return
	}
	token := c.Subscribe(m.cfg.CommandTopic, 1, m.onMessage)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil && m.log != nil {
		m.log.Errorw("mqtt_subscribe_failed", "topic", m.cfg.CommandTopic, "err", token.Error())
	}
}

func (m *MQTT) onConnectionLost(_ paho.Client, err error) {
	m.setStatus(Disconnected)
	if m.log != nil {
		m.log.Warnw("mqtt_connection_lost", "err", err)
	}
}

func (m *MQTT) onMessage(_ paho.Client, msg paho.Message) {
	if m.onFrame == nil || len(msg.Payload()) == 0 {
		return
	}
	m.onFrame(msg.Payload())
}

func (m *MQTT) setStatus(s Status) {
	m.mu.Lock()
	if m.status != Off {
		m.status = s
	}
	m.mu.Unlock()
}

// Send publishes frame at QoS 0, not retained.
func (m *MQTT) Send(frame string) error {
	if m.Status() == Off {
		return ErrClosed
	}
	token := m.client.Publish(m.cfg.TelemetryTopic, 0, false, frame)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (m *MQTT) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.mu.Lock()
	m.status = Off
	m.mu.Unlock()
	if m.client != nil {
		m.client.Disconnect(1000)
	}
	return nil
}
