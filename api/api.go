package api

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -package api -destination mock.go github.com/vwid-io/vwid/api Connector

// Operation is a start/stop request
type Operation string

// Operations
const (
	OperationStart Operation = "start"
	OperationStop  Operation = "stop"
)

// OperationString parses a start/stop request
func OperationString(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(s))); op {
	case OperationStart, OperationStop:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidOperation, s)
	}
}

// ChargeSpeed is the maximum AC charge current setting
type ChargeSpeed string

// Charge speeds
const (
	ChargeSpeedMaximum ChargeSpeed = "maximum"
	ChargeSpeedReduced ChargeSpeed = "reduced"
)

// ChargeSpeedString parses a charge speed
func ChargeSpeedString(s string) (ChargeSpeed, error) {
	switch speed := ChargeSpeed(strings.ToLower(strings.TrimSpace(s))); speed {
	case ChargeSpeedMaximum, ChargeSpeedReduced:
		return speed, nil
	default:
		return "", fmt.Errorf("%w: charge speed %s", ErrInvalidOperation, s)
	}
}

// CommandStartStop is the command name for start/stop capable domains
const CommandStartStop = "start-stop"

// ChargingSettingsRequest changes charging settings. Nil fields are left unchanged.
type ChargingSettingsRequest struct {
	TargetSoC          *int
	MaxChargeCurrentAC *ChargeSpeed
}

// ClimatisationSettingsRequest changes climatisation settings
type ClimatisationSettingsRequest struct {
	TargetTemperature float64 // °C
}

// Image is a vehicle picture
type Image struct {
	ContentType string
	Data        []byte
}

// Fetcher refreshes the complete garage from upstream
type Fetcher interface {
	FetchAll(ctx context.Context) error
}

// Connector is the vendor cloud client
type Connector interface {
	Fetcher

	// Vehicles returns the garage as of the last successful fetch
	Vehicles() []*Vehicle

	// Vehicle returns a single vehicle or ErrVehicleNotFound
	Vehicle(vin string) (*Vehicle, error)

	StartCharging(ctx context.Context, vin string) error
	StopCharging(ctx context.Context, vin string) error
	StartClimatisation(ctx context.Context, vin string) error
	StopClimatisation(ctx context.Context, vin string) error
	SetChargingSettings(ctx context.Context, vin string, req ChargingSettingsRequest) error
	SetClimatisationSettings(ctx context.Context, vin string, req ClimatisationSettingsRequest) error
	Image(ctx context.Context, vin string) (Image, error)
}

// Commander is the command surface exposed to buttons, numbers and services
type Commander interface {
	StartStopCharging(vin string, op Operation) error
	StartStopClimatisation(vin string, op Operation) error
	SetClimatisation(vin string, op *Operation, temp float64) error
	SetClimatisationTemperature(vin string, temp float64) error
	SetTargetSoC(vin string, soc int) error
	SetACChargeSpeed(vin string, speed ChargeSpeed) error
	ToggleACChargeSpeed(vin string) error
}
