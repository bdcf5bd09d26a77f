package vw

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/util"
	"golang.org/x/sync/errgroup"
)

// Provider implements api.Connector on top of the VW ID api
type Provider struct {
	log      *util.Logger
	api      *API
	mu       sync.RWMutex
	vehicles []*api.Vehicle
}

var _ api.Connector = (*Provider)(nil)

// NewProvider creates a vendor client for the given api
func NewProvider(log *util.Logger, client *API) *Provider {
	return &Provider{
		log: log,
		api: client,
	}
}

// FetchAll implements api.Fetcher. It replaces the garage only if all vehicles could be retrieved.
func (v *Provider) FetchAll(ctx context.Context) error {
	infos, err := v.api.Vehicles(ctx)
	if err != nil {
		return fmt.Errorf("vehicles: %w", err)
	}

	res := make([]*api.Vehicle, len(infos))

	g, gctx := errgroup.WithContext(ctx)
	for i, info := range infos {
		i, info := i, info

		g.Go(func() error {
			status, err := v.api.SelectiveStatus(gctx, info.VIN, Jobs)
			if err != nil {
				return fmt.Errorf("status %s: %w", info.VIN, err)
			}

			var position *ParkingPositionResponse
			if pos, err := v.api.ParkingPosition(gctx, info.VIN); err == nil {
				position = &pos
			} else if !errors.Is(err, api.ErrNotAvailable) {
				v.log.DEBUG.Printf("parking position %s: %v", info.VIN, err)
			}

			res[i] = Convert(info, status, position)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	v.mu.Lock()
	v.vehicles = res
	v.mu.Unlock()

	return nil
}

// Vehicles implements api.Connector
func (v *Provider) Vehicles() []*api.Vehicle {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]*api.Vehicle(nil), v.vehicles...)
}

// Vehicle implements api.Connector
func (v *Provider) Vehicle(vin string) (*api.Vehicle, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, vehicle := range v.vehicles {
		if strings.EqualFold(vehicle.VIN, vin) {
			return vehicle, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", api.ErrVehicleNotFound, vin)
}

// StartCharging implements api.Connector
func (v *Provider) StartCharging(ctx context.Context, vin string) error {
	return v.api.Action(ctx, vin, DomainCharging, ActionStart)
}

// StopCharging implements api.Connector
func (v *Provider) StopCharging(ctx context.Context, vin string) error {
	return v.api.Action(ctx, vin, DomainCharging, ActionStop)
}

// StartClimatisation implements api.Connector
func (v *Provider) StartClimatisation(ctx context.Context, vin string) error {
	return v.api.Action(ctx, vin, DomainClimatisation, ActionStart)
}

// StopClimatisation implements api.Connector
func (v *Provider) StopClimatisation(ctx context.Context, vin string) error {
	return v.api.Action(ctx, vin, DomainClimatisation, ActionStop)
}

// SetChargingSettings implements api.Connector. Unchanged settings are sent with their current values.
func (v *Provider) SetChargingSettings(ctx context.Context, vin string, req api.ChargingSettingsRequest) error {
	var data ChargingSettingsRequest

	if vehicle, err := v.Vehicle(vin); err == nil && vehicle.Charging != nil && vehicle.Charging.Settings != nil {
		if soc := vehicle.Charging.Settings.TargetSoC; soc != nil {
			data.TargetSOCPct = *soc
		}
		data.MaxChargeCurrentAC = string(vehicle.Charging.Settings.MaxChargeCurrentAC)
	}

	if req.TargetSoC != nil {
		data.TargetSOCPct = *req.TargetSoC
	}
	if req.MaxChargeCurrentAC != nil {
		data.MaxChargeCurrentAC = string(*req.MaxChargeCurrentAC)
	}

	return v.api.ChargingSettings(ctx, vin, data)
}

// SetClimatisationSettings implements api.Connector
func (v *Provider) SetClimatisationSettings(ctx context.Context, vin string, req api.ClimatisationSettingsRequest) error {
	return v.api.ClimatisationSettings(ctx, vin, ClimatisationSettingsRequest{
		TargetTemperature:     req.TargetTemperature,
		TargetTemperatureUnit: "celsius",
	})
}

// Image implements api.Connector. The front view is preferred.
func (v *Provider) Image(ctx context.Context, vin string) (api.Image, error) {
	res, err := v.api.Images(ctx, vin)
	if err != nil {
		return api.Image{}, err
	}

	if len(res.Data) == 0 {
		return api.Image{}, api.ErrNotAvailable
	}

	uri := res.Data[0].URL
	for _, img := range res.Data {
		if img.ViewDirection == "front" {
			uri = img.URL
			break
		}
	}

	return v.api.Download(ctx, uri)
}
