package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/entity"
)

// service names
const (
	ServiceStartStopCharging = "start_stop_charging"
	ServiceSetClimatisation  = "set_climatisation"
	ServiceSetTargetSoC      = "set_target_soc"
	ServiceSetACChargeSpeed  = "set_ac_charge_speed"
)

// ServiceRequest is the union of all service payloads
type ServiceRequest struct {
	VIN            string  `json:"vin"`
	StartStop      string  `json:"start_stop"`
	TargetTemp     float64 `json:"target_temp"`
	TargetSoC      int     `json:"target_soc"`
	MaximumReduced string  `json:"maximum_reduced"`
}

// CallService executes a named service. The payload VIN takes precedence over vin.
func CallService(c api.Commander, vin, name string, payload []byte) error {
	var req ServiceRequest
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf("invalid service payload: %w", err)
		}
	}

	if req.VIN != "" {
		vin = req.VIN
	}

	switch name {
	case ServiceStartStopCharging:
		return c.StartStopCharging(vin, api.Operation(req.StartStop))

	case ServiceSetClimatisation:
		var op *api.Operation
		if strings.TrimSpace(req.StartStop) != "" {
			o := api.Operation(req.StartStop)
			op = &o
		}
		return c.SetClimatisation(vin, op, req.TargetTemp)

	case ServiceSetTargetSoC:
		return c.SetTargetSoC(vin, req.TargetSoC)

	case ServiceSetACChargeSpeed:
		return c.SetACChargeSpeed(vin, api.ChargeSpeed(req.MaximumReduced))

	default:
		return fmt.Errorf("%w: service %s", api.ErrNotSupported, name)
	}
}

// SetEntity applies a command to a button or number entity
func SetEntity(c api.Commander, vin, key, payload string) error {
	e, ok := entity.Find(key)
	if !ok {
		return fmt.Errorf("%w: entity %s", api.ErrNotSupported, key)
	}

	switch {
	case e.Press != nil:
		return e.Press(c, vin)

	case e.Set != nil:
		val, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		return e.Set(c, vin, val)

	default:
		return fmt.Errorf("%w: entity %s is read-only", api.ErrNotSupported, key)
	}
}
