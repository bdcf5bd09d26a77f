package core

import (
	"context"
	"fmt"
	"time"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/push"
	"github.com/vwid-io/vwid/util"
)

// minimum settings
const (
	MinTargetSoC      = 10
	MaxTargetSoC      = 100
	MinTargetTempC    = 10.0
	DefaultCmdTimeout = 30 * time.Second
)

// Commands executes vehicle commands against the coordinator's connector
type Commands struct {
	log     *util.Logger
	coord   *Coordinator
	Timeout time.Duration
}

var _ api.Commander = (*Commands)(nil)

// NewCommands creates the command surface
func NewCommands(coord *Coordinator) *Commands {
	return &Commands{
		log:     util.NewLogger("cmd"),
		coord:   coord,
		Timeout: DefaultCmdTimeout,
	}
}

func (c *Commands) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Timeout)
}

// fail logs the error and sends a push notification
func (c *Commands) fail(vin string, err error) error {
	c.log.ERROR.Println(err)
	c.coord.Push(push.Event{Vehicle: vin, Event: push.CommandFailed, Message: err.Error()})
	return err
}

func (c *Commands) vehicle(vin string) (*api.Vehicle, error) {
	v, err := c.coord.Connector().Vehicle(vin)
	if err != nil {
		return nil, c.fail(vin, fmt.Errorf("failed to find car: %w", err))
	}
	return v, nil
}

func operation(op api.Operation) (api.Operation, error) {
	res, err := api.OperationString(string(op))
	if err != nil {
		return "", fmt.Errorf("operation not supported: %w", err)
	}
	return res, nil
}

// StartStopCharging starts or stops charging
func (c *Commands) StartStopCharging(vin string, op api.Operation) error {
	op, err := operation(op)
	if err != nil {
		return c.fail(vin, err)
	}

	v, err := c.vehicle(vin)
	if err != nil {
		return err
	}

	if v.Charging == nil || v.Charging.State == api.ChargingStateUnsupported || !v.Charging.HasCommand(api.CommandStartStop) {
		return c.fail(vin, fmt.Errorf("vehicle does not support charging: %s: %w", vin, api.ErrNotSupported))
	}

	ctx, cancel := c.context()
	defer cancel()

	if op == api.OperationStart {
		err = c.coord.Connector().StartCharging(ctx, v.VIN)
	} else {
		err = c.coord.Connector().StopCharging(ctx, v.VIN)
	}

	if err != nil {
		return c.fail(vin, fmt.Errorf("failed to send %s charging request: %w", op, err))
	}

	c.log.INFO.Printf("sent %s charging call to %s", op, v.VIN)

	return nil
}

// StartStopClimatisation starts or stops climatisation
func (c *Commands) StartStopClimatisation(vin string, op api.Operation) error {
	op, err := operation(op)
	if err != nil {
		return c.fail(vin, err)
	}

	v, err := c.vehicle(vin)
	if err != nil {
		return err
	}

	if v.Climatisation == nil || v.Climatisation.Settings == nil || !v.Climatisation.HasCommand(api.CommandStartStop) {
		return c.fail(vin, fmt.Errorf("climatisation start-stop not supported: %s: %w", vin, api.ErrNotSupported))
	}

	ctx, cancel := c.context()
	defer cancel()

	if op == api.OperationStart {
		err = c.coord.Connector().StartClimatisation(ctx, v.VIN)
	} else {
		err = c.coord.Connector().StopClimatisation(ctx, v.VIN)
	}

	if err != nil {
		return c.fail(vin, fmt.Errorf("failed to send %s climatisation request: %w", op, err))
	}

	c.log.INFO.Printf("sent %s climatisation call to %s", op, v.VIN)

	return nil
}

// SetClimatisationTemperature sets the climatisation target temperature in °C
func (c *Commands) SetClimatisationTemperature(vin string, temp float64) error {
	if temp < MinTargetTempC {
		return c.fail(vin, fmt.Errorf("target temperature needs to be at least %.0f: %.1f: %w", MinTargetTempC, temp, api.ErrOutOfRange))
	}

	v, err := c.vehicle(vin)
	if err != nil {
		return err
	}

	if v.Climatisation == nil || v.Climatisation.Settings == nil {
		return c.fail(vin, fmt.Errorf("climatisation settings not supported: %s: %w", vin, api.ErrNotSupported))
	}

	if current := v.Climatisation.Settings.TargetTemperature; current != nil && *current == temp {
		c.log.INFO.Printf("target temperature already set to %.1f", temp)
		return nil
	}

	ctx, cancel := c.context()
	defer cancel()

	if err := c.coord.Connector().SetClimatisationSettings(ctx, v.VIN, api.ClimatisationSettingsRequest{TargetTemperature: temp}); err != nil {
		return c.fail(vin, fmt.Errorf("failed to send target temperature: %w", err))
	}

	c.log.INFO.Printf("sent target temperature %.1f to %s", temp, v.VIN)

	return nil
}

// SetClimatisation applies an optional target temperature and then an optional operation.
// A zero temperature is ignored.
func (c *Commands) SetClimatisation(vin string, op *api.Operation, temp float64) error {
	if temp != 0 {
		if err := c.SetClimatisationTemperature(vin, temp); err != nil {
			return err
		}
	}

	if op != nil {
		return c.StartStopClimatisation(vin, *op)
	}

	return nil
}

// SetTargetSoC sets the charging target state of charge in %
func (c *Commands) SetTargetSoC(vin string, soc int) error {
	if soc < MinTargetSoC || soc > MaxTargetSoC {
		return c.fail(vin, fmt.Errorf("target state of charge needs to be between %d and %d: %d: %w", MinTargetSoC, MaxTargetSoC, soc, api.ErrOutOfRange))
	}

	v, err := c.vehicle(vin)
	if err != nil {
		return err
	}

	if v.Charging == nil || v.Charging.Settings == nil {
		return c.fail(vin, fmt.Errorf("charging settings not supported: %s: %w", vin, api.ErrNotSupported))
	}

	if current := v.Charging.Settings.TargetSoC; current != nil && *current == soc {
		c.log.INFO.Printf("target state of charge already set to %d", soc)
		return nil
	}

	ctx, cancel := c.context()
	defer cancel()

	if err := c.coord.Connector().SetChargingSettings(ctx, v.VIN, api.ChargingSettingsRequest{TargetSoC: &soc}); err != nil {
		return c.fail(vin, fmt.Errorf("failed to send target state of charge: %w", err))
	}

	c.log.INFO.Printf("sent target state of charge %d%% to %s", soc, v.VIN)

	return nil
}

// SetACChargeSpeed sets the maximum AC charge current
func (c *Commands) SetACChargeSpeed(vin string, speed api.ChargeSpeed) error {
	speed, err := api.ChargeSpeedString(string(speed))
	if err != nil {
		return c.fail(vin, err)
	}

	v, err := c.vehicle(vin)
	if err != nil {
		return err
	}

	if v.Charging == nil || v.Charging.Settings == nil {
		return c.fail(vin, fmt.Errorf("charging settings not supported: %s: %w", vin, api.ErrNotSupported))
	}

	if v.Charging.Settings.MaxChargeCurrentAC == speed {
		c.log.INFO.Printf("charging speed already set to %s", speed)
		return nil
	}

	ctx, cancel := c.context()
	defer cancel()

	if err := c.coord.Connector().SetChargingSettings(ctx, v.VIN, api.ChargingSettingsRequest{MaxChargeCurrentAC: &speed}); err != nil {
		return c.fail(vin, fmt.Errorf("failed to send charging speed: %w", err))
	}

	c.log.INFO.Printf("sent charging speed %s to %s", speed, v.VIN)

	return nil
}

// ToggleACChargeSpeed switches between maximum and reduced AC charge current
func (c *Commands) ToggleACChargeSpeed(vin string) error {
	v, err := c.vehicle(vin)
	if err != nil {
		return err
	}

	speed := api.ChargeSpeedMaximum
	if v.Charging != nil && v.Charging.Settings != nil && v.Charging.Settings.MaxChargeCurrentAC == api.ChargeSpeedMaximum {
		speed = api.ChargeSpeedReduced
	}

	return c.SetACChargeSpeed(v.VIN, speed)
}
