package entity

import "github.com/vwid-io/vwid/api"

// Buttons is the button table
var Buttons = []Entity{
	{
		Component: Button,
		Key:       "start_climate",
		Name:      "Start Climate",
		Icon:      "mdi:fan-plus",
		Press: func(c api.Commander, vin string) error {
			return c.StartStopClimatisation(vin, api.OperationStart)
		},
	},
	{
		Component: Button,
		Key:       "stop_climate",
		Name:      "Stop Climate",
		Icon:      "mdi:fan-off",
		Press: func(c api.Commander, vin string) error {
			return c.StartStopClimatisation(vin, api.OperationStop)
		},
	},
	{
		Component: Button,
		Key:       "toggle_ac_charge_speed",
		Name:      "Toggle AC Charge Speed",
		Icon:      "mdi:ev-station",
		Press: func(c api.Commander, vin string) error {
			return c.ToggleACChargeSpeed(vin)
		},
	},
	{
		Component: Button,
		Key:       "start_charging",
		Name:      "Start Charging",
		Icon:      "mdi:play-circle-outline",
		Press: func(c api.Commander, vin string) error {
			return c.StartStopCharging(vin, api.OperationStart)
		},
	},
	{
		Component: Button,
		Key:       "stop_charging",
		Name:      "Stop Charging",
		Icon:      "mdi:stop-circle-outline",
		Press: func(c api.Commander, vin string) error {
			return c.StartStopCharging(vin, api.OperationStop)
		},
	},
}

// Numbers is the numeric control table
var Numbers = []Entity{
	{
		Component: Number,
		Key:       "target_state_of_charge",
		Name:      "Target State Of Charge",
		Icon:      "mdi:battery",
		Unit:      unitPercent,
		Category:  CategoryConfig,
		Min:       10,
		Max:       100,
		Step:      10,
		Value:     chargingSettings(func(s *api.ChargingSettings) (interface{}, error) { return ptr(s.TargetSoC) }),
		Set: func(c api.Commander, vin string, val float64) error {
			return c.SetTargetSoC(vin, int(val))
		},
	},
	{
		Component: Number,
		Key:       "target_climate_temperature",
		Name:      "Target Climate Temperature",
		Icon:      "mdi:thermometer",
		Unit:      unitCelsius,
		Category:  CategoryConfig,
		Min:       10,
		Max:       30,
		Step:      0.5,
		Value:     climatisationSettings(func(s *api.ClimatisationSettings) (interface{}, error) { return ptr(s.TargetTemperature) }),
		Set: func(c api.Commander, vin string, val float64) error {
			return c.SetClimatisationTemperature(vin, val)
		},
	},
}

// Location is the device tracker state
type Location struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	SourceType string  `json:"source_type"`
}

// Tracker is the parking position device tracker
var Tracker = Entity{
	Component: DeviceTracker,
	Key:       "tracker",
	Name:      "tracker",
	Icon:      "mdi:car",
	Value: func(v *api.Vehicle) (interface{}, error) {
		if v.Position == nil {
			return nil, api.ErrNotAvailable
		}
		return Location{
			Latitude:   v.Position.Latitude,
			Longitude:  v.Position.Longitude,
			SourceType: "gps",
		}, nil
	},
}

// Image is the vehicle picture. It is served on demand and publishes no state.
var Image = Entity{
	Component: Camera,
	Key:       "Image",
	Name:      "Image",
	Prefix:    "Volkswagen ID ",
}
