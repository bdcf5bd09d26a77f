package mqtt

import (
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/vwid-io/vwid/util"
)

// Timeout is the default MQTT timeout
var Timeout = 30 * time.Second

// Config is the public configuration
type Config struct {
	Broker   string `mapstructure:"broker"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	ClientID string `mapstructure:"clientID"`
	Insecure bool   `mapstructure:"insecure"`
	Topic    string `mapstructure:"topic"`
}

// RootTopic returns the configured root topic or default
func (m Config) RootTopic() string {
	if topic := strings.TrimSpace(m.Topic); topic != "" {
		return strings.TrimRight(topic, "/")
	}

	return "vwid"
}

// Callback is invoked for received messages
type Callback func(topic string, payload []byte)

// Will is the last will published by the broker on connection loss
type Will struct {
	Topic, Payload string
}

// Client encapsulates mqtt publish/subscribe functions
type Client struct {
	log      *util.Logger
	mux      sync.Mutex
	Client   paho.Client
	broker   string
	Qos      byte
	listener map[string][]Callback
	onlineCb func()
}

// ClientID created unique mqtt client id
func ClientID() string {
	return "vwid-" + strings.Split(uuid.New().String(), "-")[0]
}

// NewClient creates new publisher for paho
func NewClient(log *util.Logger, broker, user, password, clientID string, qos byte, insecure bool, will *Will) (*Client, error) {
	broker = util.DefaultScheme(broker, "tcp")
	log.INFO.Printf("connecting %s at %s", clientID, broker)

	mc := &Client{
		log:      log,
		broker:   broker,
		Qos:      qos,
		listener: make(map[string][]Callback),
	}

	options := paho.NewClientOptions()
	options.AddBroker(broker)
	options.SetUsername(user)
	options.SetPassword(password)
	options.SetClientID(clientID)
	options.SetCleanSession(true)
	options.SetAutoReconnect(true)
	options.SetOnConnectHandler(mc.ConnectionHandler)
	options.SetConnectionLostHandler(mc.ConnectionLostHandler)
	options.SetConnectTimeout(Timeout)

	if will != nil {
		options.SetWill(will.Topic, will.Payload, qos, true)
	}

	if insecure {
		options.SetTLSConfig(util.InsecureTLS())
	}

	client := paho.NewClient(options)
	token := client.Connect()
	if err := mc.WaitForToken("connect", broker, token); err != nil {
		return nil, fmt.Errorf("error connecting: %w", err)
	}

	mc.Client = client

	return mc, nil
}

// OnConnect registers a callback that is invoked after every (re)connect
func (m *Client) OnConnect(cb func()) {
	m.mux.Lock()
	m.onlineCb = cb
	m.mux.Unlock()

	if m.Client != nil && m.Client.IsConnected() {
		cb()
	}
}

// ConnectionLostHandler logs cause of connection loss as warning
func (m *Client) ConnectionLostHandler(client paho.Client, reason error) {
	m.log.WARN.Printf("%s connection lost: %v", m.broker, reason.Error())
}

// ConnectionHandler restores listeners
func (m *Client) ConnectionHandler(client paho.Client) {
	m.log.DEBUG.Printf("%s connected", m.broker)

	m.mux.Lock()
	defer m.mux.Unlock()

	for topic, l := range m.listener {
		m.log.DEBUG.Printf("%s subscribe %s", m.broker, topic)
		go m.listen(client, topic, l)
	}

	if cb := m.onlineCb; cb != nil {
		go cb()
	}
}

// Disconnect closes the connection after publishing the given messages
func (m *Client) Disconnect(quiesce time.Duration) {
	m.Client.Disconnect(uint(quiesce.Milliseconds()))
}

// Publish synchronously publishes payload using client qos
func (m *Client) Publish(topic string, retained bool, payload interface{}) error {
	token := m.Client.Publish(topic, m.Qos, retained, payload)
	return m.WaitForToken("send", topic, token)
}

// Listen attaches listener to topic
func (m *Client) Listen(topic string, callback Callback) error {
	m.mux.Lock()
	m.listener[topic] = append(m.listener[topic], callback)
	callbacks := m.listener[topic]
	m.mux.Unlock()

	return m.listen(m.Client, topic, callbacks)
}

// listen attaches listeners to topic
func (m *Client) listen(client paho.Client, topic string, callbacks []Callback) error {
	handler := func(c paho.Client, msg paho.Message) {
		payload := msg.Payload()
		m.log.TRACE.Printf("recv %s: '%s'", msg.Topic(), string(payload))

		for _, cb := range callbacks {
			cb(msg.Topic(), payload)
		}
	}

	token := client.Subscribe(topic, m.Qos, handler)
	return m.WaitForToken("subscribe", topic, token)
}

// WaitForToken synchronously waits until token operation completed
func (m *Client) WaitForToken(action, topic string, token paho.Token) error {
	if token.WaitTimeout(Timeout) {
		if err := token.Error(); err != nil {
			m.log.ERROR.Printf("%s: %s error: %v", action, topic, err)
			return err
		}
		return nil
	}

	err := fmt.Errorf("%s: %s timeout", action, topic)
	m.log.DEBUG.Println(err)

	return err
}
