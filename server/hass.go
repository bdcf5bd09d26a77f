package server

import (
	"fmt"
	"strings"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/entity"
)

// DiscoveryPrefix is the Home Assistant MQTT discovery prefix
const DiscoveryPrefix = "homeassistant"

// availability payloads
const (
	PayloadOnline  = "online"
	PayloadOffline = "offline"
	PayloadPress   = "PRESS"
	PayloadNone    = "None"
)

// DiscoveryDevice is the device block of a discovery message
type DiscoveryDevice struct {
	Identifiers      []string `json:"identifiers"`
	Manufacturer     string   `json:"manufacturer"`
	Model            string   `json:"model,omitempty"`
	Name             string   `json:"name"`
	SoftwareVersion  string   `json:"sw_version,omitempty"`
	ConfigurationURL string   `json:"configuration_url,omitempty"`
}

// Discovery is a Home Assistant MQTT discovery message
type Discovery struct {
	Base              string          `json:"~"`
	Name              string          `json:"name"`
	UniqueID          string          `json:"unique_id"`
	ObjectID          string          `json:"object_id"`
	Device            DiscoveryDevice `json:"device"`
	AvailabilityTopic string          `json:"availability_topic"`

	StateTopic          string `json:"state_topic,omitempty"`
	CommandTopic        string `json:"command_topic,omitempty"`
	JSONAttributesTopic string `json:"json_attributes_topic,omitempty"`
	Topic               string `json:"topic,omitempty"`

	Icon              string `json:"icon,omitempty"`
	DeviceClass       string `json:"device_class,omitempty"`
	StateClass        string `json:"state_class,omitempty"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	EntityCategory    string `json:"entity_category,omitempty"`

	// binary sensor
	PayloadOn  string `json:"payload_on,omitempty"`
	PayloadOff string `json:"payload_off,omitempty"`

	// button
	PayloadPress string `json:"payload_press,omitempty"`

	// number
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`
	Mode string   `json:"mode,omitempty"`

	// device tracker
	SourceType string `json:"source_type,omitempty"`
}

// Topics builds the MQTT topic layout below the root topic
type Topics struct {
	Root string
}

// Status is the availability topic
func (t Topics) Status() string {
	return t.Root + "/status"
}

// Vehicle is the base topic of a vehicle
func (t Topics) Vehicle(vin string) string {
	return fmt.Sprintf("%s/%s", t.Root, vin)
}

// State is the state topic of a vehicle value
func (t Topics) State(vin, key string) string {
	return fmt.Sprintf("%s/%s", t.Vehicle(vin), key)
}

// Set is the command topic of a vehicle entity
func (t Topics) Set(vin, key string) string {
	return t.State(vin, key) + "/set"
}

// Service is the topic of a vehicle service
func (t Topics) Service(vin, name string) string {
	return fmt.Sprintf("%s/service/%s", t.Vehicle(vin), name)
}

// Global is the topic of a value not bound to a vehicle
func (t Topics) Global(key string) string {
	return fmt.Sprintf("%s/%s", t.Root, key)
}

// Parse splits a vehicle topic into VIN and remainder
func (t Topics) Parse(topic string) (vin string, rest []string, ok bool) {
	prefix := t.Root + "/"
	if !strings.HasPrefix(topic, prefix) {
		return "", nil, false
	}

	segments := strings.Split(strings.TrimPrefix(topic, prefix), "/")
	if len(segments) < 2 || segments[0] == "" {
		return "", nil, false
	}

	return segments[0], segments[1:], true
}

// DiscoveryTopic is the config topic of an entity
func DiscoveryTopic(e entity.Entity, vin string) string {
	return fmt.Sprintf("%s/%s/%s/config", DiscoveryPrefix, e.Component, e.UniqueID(vin))
}

func objectID(e entity.Entity, vin string) string {
	return strings.ToLower(fmt.Sprintf("vw_%s_%s", vin, e.Key))
}

// NewDiscovery creates the discovery message of an entity of the given vehicle
func NewDiscovery(t Topics, e entity.Entity, v *api.Vehicle, configURL string) Discovery {
	device := entity.DeviceFor(v)

	d := Discovery{
		Base:     t.State(v.VIN, e.Key),
		Name:     e.FullName(v),
		UniqueID: e.UniqueID(v.VIN),
		ObjectID: objectID(e, v.VIN),
		Device: DiscoveryDevice{
			Identifiers:      []string{device.Identifiers},
			Manufacturer:     device.Manufacturer,
			Model:            device.Model,
			Name:             device.Name,
			SoftwareVersion:  Version,
			ConfigurationURL: configURL,
		},
		AvailabilityTopic: t.Status(),
		Icon:              e.Icon,
		DeviceClass:       e.DeviceClass,
		StateClass:        e.StateClass(),
		UnitOfMeasurement: e.Unit,
		EntityCategory:    e.Category,
	}

	switch e.Component {
	case entity.Sensor:
		d.StateTopic = "~"

	case entity.BinarySensor:
		d.StateTopic = "~"
		d.PayloadOn = "true"
		d.PayloadOff = "false"

	case entity.Button:
		d.CommandTopic = "~/set"
		d.PayloadPress = PayloadPress

	case entity.Number:
		d.StateTopic = "~"
		d.CommandTopic = "~/set"
		d.Min, d.Max, d.Step = &e.Min, &e.Max, &e.Step
		d.Mode = "box"

	case entity.DeviceTracker:
		d.JSONAttributesTopic = "~"
		d.SourceType = "gps"

	case entity.Camera:
		d.Topic = "~"
	}

	return d
}
