package api

import (
	"time"

	"github.com/thoas/go-funk"
)

// ConnectionState is the vehicle's cloud connectivity
type ConnectionState string

// Connection states
const (
	ConnectionStateUnknown ConnectionState = ""
	ConnectionStateOnline  ConnectionState = "online"
	ConnectionStateOffline ConnectionState = "offline"
)

// LightState is the state of a parking light
type LightState string

// Light states
const (
	LightStateOn      LightState = "on"
	LightStateOff     LightState = "off"
	LightStateInvalid LightState = "invalid"
)

// Charging states as reported by the vehicle
const (
	ChargingStateOff         = "off"
	ChargingStateReady       = "readyForCharging"
	ChargingStateCharging    = "charging"
	ChargingStateError       = "error"
	ChargingStateUnsupported = "unsupported"
)

// SupportedModels are the vehicle models exposed by default
var SupportedModels = []string{"ID.3", "ID.4", "ID.5", "ID. Buzz", "ID.7 Limousine", "ID.7 Tourer"}

// Vehicle is a snapshot of a single vehicle. Nil fields are not available.
type Vehicle struct {
	VIN             string
	Name            string
	Model           string
	Type            string
	ConnectionState ConnectionState
	Active          *bool
	Capabilities    []string
	Odometer        *float64 // km

	Drive         *ElectricDrive
	Charging      *Charging
	Climatisation *Climatisation
	Maintenance   *Maintenance
	Doors         *Doors
	Windows       map[string]string     // window name -> open state
	Lights        map[string]LightState // left, right
	Position      *Position

	CapturedAt time.Time
}

// HasCapability checks if the vehicle reports the given capability
func (v *Vehicle) HasCapability(id string) bool {
	return funk.ContainsString(v.Capabilities, id)
}

// ElectricDrive is the primary electric drive
type ElectricDrive struct {
	Level          *int     // %
	Range          *float64 // km
	BatteryTempMin *float64 // °C
	BatteryTempMax *float64 // °C
}

// Charging is the charging domain
type Charging struct {
	State               string
	Mode                string
	Type                string
	SettingsMode        string
	Power               *float64 // kW
	Rate                *float64 // km/h
	EstimatedCompletion *time.Time
	Commands            []string
	Settings            *ChargingSettings
	Plug                *Plug
}

// HasCommand checks if the domain exposes the given command
func (c *Charging) HasCommand(cmd string) bool {
	return funk.ContainsString(c.Commands, cmd)
}

// ChargingSettings are the charging settings
type ChargingSettings struct {
	TargetSoC          *int
	MaxChargeCurrentAC ChargeSpeed
	AutoUnlock         string
	AutoUnlockAC       string
}

// Plug is the charging connector
type Plug struct {
	ConnectionState string
	LockState       string
	ExternalPower   string
}

// Climatisation is the climatisation domain
type Climatisation struct {
	State               string
	EstimatedCompletion *time.Time
	Commands            []string
	Settings            *ClimatisationSettings
}

// HasCommand checks if the domain exposes the given command
func (c *Climatisation) HasCommand(cmd string) bool {
	return funk.ContainsString(c.Commands, cmd)
}

// ClimatisationSettings are the climatisation settings
type ClimatisationSettings struct {
	TargetTemperature    *float64 // °C
	WithoutExternalPower *bool
	AtUnlock             *bool
	WindowHeating        *bool
}

// Maintenance is the service schedule
type Maintenance struct {
	InspectionDue   *time.Time
	InspectionDueKm *float64
}

// Doors are the vehicle's openings and their overall lock state
type Doors struct {
	LockState string
	Doors     map[string]Door // bonnet, trunk, frontLeft, frontRight, rearLeft, rearRight, sunRoof, roofCover
}

// Door is a single opening
type Door struct {
	LockState string
	OpenState string
}

// Position is the parking position
type Position struct {
	Latitude, Longitude float64
}
