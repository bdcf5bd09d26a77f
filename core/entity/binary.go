package entity

import "github.com/vwid-io/vwid/api"

func light(name string) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		state, ok := v.Lights[name]
		if !ok {
			return nil, api.ErrNotAvailable
		}
		return state == api.LightStateOn, nil
	}
}

// BinarySensors is the binary sensor table
var BinarySensors = []Entity{
	{
		Key:   "climatisationWithoutExternalPower",
		Name:  "Climatisation Without External Power",
		Icon:  "mdi:fan",
		Value: climatisationSettings(func(s *api.ClimatisationSettings) (interface{}, error) { return ptr(s.WithoutExternalPower) }),
	},
	{
		Key:   "climatizationAtUnlock",
		Name:  "Climatisation At Unlock",
		Icon:  "mdi:fan",
		Value: climatisationSettings(func(s *api.ClimatisationSettings) (interface{}, error) { return ptr(s.AtUnlock) }),
	},
	{
		Key:   "windowHeatingEnabled",
		Name:  "Window Heating Enabled",
		Icon:  "mdi:car-defrost-front",
		Value: climatisationSettings(func(s *api.ClimatisationSettings) (interface{}, error) { return ptr(s.WindowHeating) }),
	},
	{
		Key:         "isOnline",
		Name:        "Car Is Online",
		DeviceClass: "connectivity",
		Value: func(v *api.Vehicle) (interface{}, error) {
			if v.ConnectionState == api.ConnectionStateUnknown {
				return nil, api.ErrNotAvailable
			}
			return v.ConnectionState == api.ConnectionStateOnline, nil
		},
	},
	{
		Key:   "isActive",
		Name:  "Car Is Active",
		Icon:  "mdi:car-side",
		Value: func(v *api.Vehicle) (interface{}, error) { return ptr(v.Active) },
	},
	{
		Key:   "lightsRight",
		Name:  "Lights Right",
		Icon:  "mdi:car-light-dimmed",
		Value: light("right"),
	},
	{
		Key:   "lightsLeft",
		Name:  "Lights Left",
		Icon:  "mdi:car-light-dimmed",
		Value: light("left"),
	},
}

func init() {
	for i := range BinarySensors {
		BinarySensors[i].Component = BinarySensor
	}
}
