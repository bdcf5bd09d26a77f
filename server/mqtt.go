package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core"
	"github.com/vwid-io/vwid/core/entity"
	"github.com/vwid-io/vwid/server/public"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/mqtt"
)

// Coordinator is the vehicle data source of the publishers
type Coordinator interface {
	Vehicles() []*api.Vehicle
	Vehicle(vin string) (*api.Vehicle, error)
	Image(ctx context.Context, vin string) (api.Image, error)
}

// Publisher is the MQTT client surface
type Publisher interface {
	Publish(topic string, retained bool, payload interface{}) error
	Listen(topic string, callback mqtt.Callback) error
}

// MQTT is the Home Assistant MQTT discovery bridge
type MQTT struct {
	log       *util.Logger
	Handler   Publisher
	topics    Topics
	coord     Coordinator
	cmd       api.Commander
	mu        sync.Mutex
	announced map[string]bool
	images    map[string][]byte
}

// NewMQTT creates the MQTT bridge below the root topic
func NewMQTT(client Publisher, root string, coord Coordinator, cmd api.Commander) *MQTT {
	return &MQTT{
		log:       util.NewLogger("mqtt"),
		Handler:   client,
		topics:    Topics{Root: root},
		coord:     coord,
		cmd:       cmd,
		announced: make(map[string]bool),
		images:    make(map[string][]byte),
	}
}

// Encode converts a value into its MQTT payload
func Encode(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return PayloadNone
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.IsZero() {
			return PayloadNone
		}
		return val.Format(time.RFC3339)
	case time.Duration:
		return strconv.Itoa(int(val.Seconds()))
	case fmt.Stringer:
		return val.String()
	case entity.Location, []string:
		b, err := json.Marshal(val)
		if err != nil {
			return PayloadNone
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (m *MQTT) publish(topic string, retained bool, payload interface{}) {
	if err := m.Handler.Publish(topic, retained, payload); err != nil {
		m.log.ERROR.Printf("publish %s: %v", topic, err)
	}
}

// announce publishes the discovery messages of all entities of the vehicle
func (m *MQTT) announce(v *api.Vehicle) {
	for _, e := range entity.All() {
		payload, err := json.Marshal(NewDiscovery(m.topics, e, v, public.Addr))
		if err != nil {
			m.log.ERROR.Printf("discovery %s: %v", e.Key, err)
			continue
		}

		m.publish(DiscoveryTopic(e, v.VIN), true, payload)
	}

	m.log.DEBUG.Printf("announced %s", v.VIN)
}

// Announce publishes availability and discovery of all known vehicles.
// It is invoked on every broker (re)connect.
func (m *MQTT) Announce() {
	m.publish(m.topics.Status(), true, PayloadOnline)

	m.mu.Lock()
	m.announced = make(map[string]bool)
	m.images = make(map[string][]byte)
	m.mu.Unlock()

	vins := make([]string, 0)
	for _, v := range m.coord.Vehicles() {
		vins = append(vins, v.VIN)
	}

	m.discover(vins)
}

// discover announces vehicles not seen before
func (m *MQTT) discover(vins []string) {
	for _, vin := range vins {
		m.mu.Lock()
		known := m.announced[vin]
		m.announced[vin] = true
		m.mu.Unlock()

		if !known {
			v, err := m.coord.Vehicle(vin)
			if err != nil {
				m.log.ERROR.Println(err)
				continue
			}

			m.announce(v)
		}

		go m.publishImage(vin)
	}
}

// publishImage publishes the vehicle picture if it changed
func (m *MQTT) publishImage(vin string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	img, err := m.coord.Image(ctx, vin)
	if err != nil {
		m.log.DEBUG.Printf("image %s: %v", vin, err)
		return
	}

	m.mu.Lock()
	changed := !bytes.Equal(m.images[vin], img.Data)
	m.images[vin] = img.Data
	m.mu.Unlock()

	if changed {
		m.publish(m.topics.State(vin, entity.Image.Key), true, img.Data)
	}
}

// Listen subscribes to entity commands and services
func (m *MQTT) Listen() error {
	if err := m.Handler.Listen(m.topics.Root+"/+/+/set", m.handleSet); err != nil {
		return err
	}

	return m.Handler.Listen(m.topics.Root+"/+/service/+", m.handleService)
}

func (m *MQTT) handleSet(topic string, payload []byte) {
	vin, rest, ok := m.topics.Parse(topic)
	if !ok || len(rest) != 2 {
		m.log.WARN.Printf("invalid command topic: %s", topic)
		return
	}

	if err := SetEntity(m.cmd, vin, rest[0], string(payload)); err != nil {
		m.log.ERROR.Printf("%s: %v", rest[0], err)
	}
}

func (m *MQTT) handleService(topic string, payload []byte) {
	vin, rest, ok := m.topics.Parse(topic)
	if !ok || len(rest) != 2 {
		m.log.WARN.Printf("invalid service topic: %s", topic)
		return
	}

	if err := CallService(m.cmd, vin, rest[1], payload); err != nil {
		m.log.ERROR.Printf("%s: %v", rest[1], err)
	}
}

// Run starts the MQTT publisher for the given parameter stream
func (m *MQTT) Run(in <-chan util.Param) {
	for p := range in {
		if p.Vehicle == "" {
			if vins, ok := p.Val.([]string); ok && p.Key == core.KeyVehicles {
				m.discover(vins)
			}

			m.publish(m.topics.Global(p.Key), true, Encode(p.Val))
			continue
		}

		m.publish(m.topics.State(p.Vehicle, p.Key), true, Encode(p.Val))
	}
}
