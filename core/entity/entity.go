package entity

import (
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/vwid-io/vwid/api"
)

// Component is the Home Assistant platform of an entity
type Component string

// Components
const (
	Sensor        Component = "sensor"
	BinarySensor  Component = "binary_sensor"
	Button        Component = "button"
	Number        Component = "number"
	DeviceTracker Component = "device_tracker"
	Camera        Component = "camera"
)

// CategoryConfig marks entities that change vehicle settings
const CategoryConfig = "config"

// StateClassMeasurement is used for all sensors with a unit
const StateClassMeasurement = "measurement"

// Manufacturer is reported as device manufacturer
const Manufacturer = "Volkswagen"

// Clock is the time source of relative sensors
var Clock = clock.New()

// Getter reads an entity value from a vehicle snapshot.
// It returns api.ErrNotAvailable if the value is absent.
type Getter func(v *api.Vehicle) (interface{}, error)

// Entity describes one observable or controllable vehicle attribute
type Entity struct {
	Component   Component
	Key         string
	Name        string
	Icon        string
	Unit        string
	DeviceClass string
	Category    string
	Prefix      string
	Value       Getter

	// numbers
	Min, Max, Step float64
	Set            func(c api.Commander, vin string, val float64) error

	// buttons
	Press func(c api.Commander, vin string) error
}

// UniqueID is the stable id of the entity for the given vehicle
func (e Entity) UniqueID(vin string) string {
	return vin + "-" + e.Key
}

// FullName is the entity name prefixed with the vehicle name
func (e Entity) FullName(v *api.Vehicle) string {
	return e.Prefix + v.Name + " " + e.Name
}

// StateClass returns measurement for sensors with a unit
func (e Entity) StateClass() string {
	if e.Component == Sensor && e.Unit != "" {
		return StateClassMeasurement
	}
	return ""
}

// Device describes the vehicle as Home Assistant device
type Device struct {
	Identifiers  string
	Manufacturer string
	Model        string
	Name         string
}

// DeviceFor returns the device of a vehicle
func DeviceFor(v *api.Vehicle) Device {
	return Device{
		Identifiers:  "vw" + v.VIN,
		Manufacturer: Manufacturer,
		Model:        v.Model,
		Name:         "Volkswagen " + v.Name + " (" + v.VIN + ")",
	}
}

// All returns every entity of every platform
func All() []Entity {
	var res []Entity
	for _, table := range [][]Entity{Sensors, BinarySensors, Buttons, Numbers, {Tracker, Image}} {
		res = append(res, table...)
	}
	return res
}

// Stateful returns the entities that publish a state
func Stateful() []Entity {
	var res []Entity
	for _, e := range All() {
		if e.Value != nil {
			res = append(res, e)
		}
	}
	return res
}

// Find returns the entity with the given key
func Find(key string) (Entity, bool) {
	for _, e := range All() {
		if e.Key == key {
			return e, true
		}
	}
	return Entity{}, false
}

// Values evaluates all stateful entities. Unavailable values are nil.
func Values(v *api.Vehicle) map[string]interface{} {
	res := make(map[string]interface{})

	for _, e := range Stateful() {
		val, err := e.Value(v)
		if err != nil {
			val = nil
		}
		res[e.Key] = val
	}

	return res
}

// minutesUntil returns the remaining minutes, never negative
func minutesUntil(ts *time.Time) (interface{}, error) {
	if ts == nil {
		return nil, api.ErrNotAvailable
	}

	d := ts.Sub(Clock.Now())
	if d < 0 {
		d = 0
	}

	return int(math.Round(d.Minutes())), nil
}

// daysUntil returns the remaining full days, negative if overdue
func daysUntil(ts *time.Time) (interface{}, error) {
	if ts == nil {
		return nil, api.ErrNotAvailable
	}

	return int(ts.Sub(Clock.Now()).Hours() / 24), nil
}

func str[T ~string](s T) (interface{}, error) {
	if s == "" {
		return nil, api.ErrNotAvailable
	}
	return string(s), nil
}

func ptr[T any](p *T) (interface{}, error) {
	if p == nil {
		return nil, api.ErrNotAvailable
	}
	return *p, nil
}
