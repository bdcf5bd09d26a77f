package vehicle

import (
	"fmt"
	"strings"

	"github.com/thoas/go-funk"
	"github.com/vwid-io/vwid/api"
)

// vins extracts the VINs of the given vehicles
func vins(vehicles []*api.Vehicle) []string {
	return funk.Map(vehicles, func(v *api.Vehicle) string {
		return v.VIN
	}).([]string)
}

// EnsureVehicle resolves the VIN against the garage and returns the vehicle.
// An empty VIN selects the only vehicle of the garage.
func EnsureVehicle(vin string, list func() ([]*api.Vehicle, error)) (*api.Vehicle, error) {
	_, vehicle, err := EnsureVehicleGen(vin, list, func(v *api.Vehicle) (string, *api.Vehicle) {
		return v.VIN, v
	})

	return vehicle, err
}

// EnsureVehicleGen is the generic version of EnsureVehicle
func EnsureVehicleGen[T, R any](
	vin string,
	list func() ([]T, error),
	extract func(T) (string, R),
) (string, R, error) {
	vehicles, err := list()
	if err != nil {
		return "", *new(R), fmt.Errorf("cannot get vehicles: %w", err)
	}

	if vin = strings.ToUpper(strings.TrimSpace(vin)); vin != "" {
		for _, vehicle := range vehicles {
			if vin2, res := extract(vehicle); strings.ToUpper(vin2) == vin {
				return vin2, res, nil
			}
		}

		err = fmt.Errorf("%w: %s", api.ErrVehicleNotFound, vin)
	} else {
		// vin empty
		if len(vehicles) == 1 {
			vin, res := extract(vehicles[0])
			return vin, res, nil
		}

		ids := make([]string, 0, len(vehicles))
		for _, vehicle := range vehicles {
			id, _ := extract(vehicle)
			ids = append(ids, id)
		}

		err = fmt.Errorf("%w: vin required, available %v", api.ErrVehicleNotFound, ids)
	}

	return "", *new(R), err
}

// Garage is a static list of vehicles
type Garage []*api.Vehicle

// List implements the list function of EnsureVehicle
func (g Garage) List() ([]*api.Vehicle, error) {
	return g, nil
}

// VINs returns the VINs of the garage
func (g Garage) VINs() []string {
	return vins(g)
}
