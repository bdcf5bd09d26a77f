package vehicle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/api"
)

func TestEnsureVehicle(t *testing.T) {
	one := Garage{{VIN: "WVWZZZE1ZMP000001"}}
	two := Garage{{VIN: "WVWZZZE1ZMP000001"}, {VIN: "WVWZZZE1ZMP000002"}}

	v, err := EnsureVehicle("", one.List)
	require.NoError(t, err)
	require.Equal(t, "WVWZZZE1ZMP000001", v.VIN)

	v, err = EnsureVehicle("wvwzzze1zmp000002", two.List)
	require.NoError(t, err)
	require.Equal(t, "WVWZZZE1ZMP000002", v.VIN)

	_, err = EnsureVehicle("", two.List)
	require.ErrorIs(t, err, api.ErrVehicleNotFound)

	_, err = EnsureVehicle("WVWZZZE1ZMP000003", two.List)
	require.ErrorIs(t, err, api.ErrVehicleNotFound)

	_, err = EnsureVehicle("", Garage{}.List)
	require.ErrorIs(t, err, api.ErrVehicleNotFound)

	boom := errors.New("boom")
	_, err = EnsureVehicle("", func() ([]*api.Vehicle, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	require.Equal(t, []string{"WVWZZZE1ZMP000001", "WVWZZZE1ZMP000002"}, two.VINs())
}
