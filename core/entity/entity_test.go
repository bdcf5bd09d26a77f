package entity

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/api"
)

func fixture(now time.Time) *api.Vehicle {
	soc, target := 62, 80
	power, temp := 11.2, 21.5
	on := true
	done := now.Add(90 * time.Minute)
	past := now.Add(-5 * time.Minute)
	due := now.Add(10*24*time.Hour + time.Hour)

	return &api.Vehicle{
		VIN:             "WVWZZZE1ZMP000001",
		Name:            "Lilly",
		Model:           "ID.3",
		Type:            "electric",
		ConnectionState: api.ConnectionStateOnline,
		Drive:           &api.ElectricDrive{Level: &soc},
		Charging: &api.Charging{
			State:               api.ChargingStateCharging,
			Mode:                "manual",
			Type:                "ac",
			Power:               &power,
			EstimatedCompletion: &done,
			Settings:            &api.ChargingSettings{TargetSoC: &target, MaxChargeCurrentAC: api.ChargeSpeedMaximum},
		},
		Climatisation: &api.Climatisation{
			State:               "off",
			EstimatedCompletion: &past,
			Settings:            &api.ClimatisationSettings{TargetTemperature: &temp, WindowHeating: &on},
		},
		Maintenance: &api.Maintenance{InspectionDue: &due},
		Doors: &api.Doors{
			LockState: "locked",
			Doors:     map[string]api.Door{"trunk": {LockState: "unlocked", OpenState: "open"}},
		},
		Windows:  map[string]string{"frontRight": "closed"},
		Lights:   map[string]api.LightState{"left": api.LightStateOn, "right": api.LightStateOff},
		Position: &api.Position{Latitude: 52.42, Longitude: 10.78},
	}
}

func TestTables(t *testing.T) {
	require.Len(t, Sensors, 43)
	require.Len(t, BinarySensors, 7)
	require.Len(t, Buttons, 5)
	require.Len(t, Numbers, 2)

	keys := make(map[string]bool)
	for _, e := range All() {
		require.False(t, keys[e.Key], "duplicate key %s", e.Key)
		keys[e.Key] = true
		require.NotEmpty(t, e.Component, e.Key)
		require.NotEmpty(t, e.Name, e.Key)
	}

	for _, e := range Sensors {
		if e.Unit != "" {
			require.Equal(t, StateClassMeasurement, e.StateClass(), e.Key)
		}
	}

	for _, e := range Buttons {
		require.NotNil(t, e.Press, e.Key)
	}
}

func TestValues(t *testing.T) {
	clck := clock.NewMock()
	clck.Set(time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC))
	Clock = clck
	defer func() { Clock = clock.New() }()

	v := fixture(clck.Now())
	res := Values(v)

	for key, val := range map[string]interface{}{
		"carType":                             "electric",
		"chargingState":                       "charging",
		"chargeMode":                          "manual",
		"chargeType":                          "ac",
		"chargePower_kW":                      11.2,
		"remainingChargingTimeToComplete_min": 90,
		"remainingClimatisationTime_min":      0,
		"targetSOC_pct":                       80,
		"currentSOC_pct":                      62,
		"maxChargeCurrentAC":                  "maximum",
		"targetTemperature":                   21.5,
		"inspectionDue":                       10,
		"doorLockStatus":                      "locked",
		"trunkLockStatus":                     "unlocked",
		"trunkOpenStatus":                     "open",
		"windowfrontRightOpenStatus":          "closed",
		"windowHeatingEnabled":                true,
		"isOnline":                            true,
		"lightsLeft":                          true,
		"lightsRight":                         false,
		"target_state_of_charge":              80,
		"target_climate_temperature":          21.5,
		"tracker":                             Location{Latitude: 52.42, Longitude: 10.78, SourceType: "gps"},
	} {
		require.Equal(t, val, res[key], key)
	}

	// unavailable values
	for _, key := range []string{"odometer", "bonnetLockStatus", "isActive", "plugLockState", "climatizationAtUnlock", "chargingSettings"} {
		v, ok := res[key]
		require.True(t, ok, key)
		require.Nil(t, v, key)
	}

	_, ok := res["Image"]
	require.False(t, ok)
}

func TestEmptyVehicle(t *testing.T) {
	v := &api.Vehicle{VIN: "WVWZZZE1ZMP000001"}
	for key, val := range Values(v) {
		require.Nil(t, val, key)
	}
}

func TestNaming(t *testing.T) {
	v := &api.Vehicle{VIN: "WVWZZZE1ZMP000001", Name: "Lilly", Model: "ID.3"}

	e, ok := Find("odometer")
	require.True(t, ok)
	require.Equal(t, "WVWZZZE1ZMP000001-odometer", e.UniqueID(v.VIN))
	require.Equal(t, "Lilly Odometer", e.FullName(v))
	require.Equal(t, "Volkswagen ID Lilly Image", Image.FullName(v))

	require.Equal(t, Device{
		Identifiers:  "vwWVWZZZE1ZMP000001",
		Manufacturer: "Volkswagen",
		Model:        "ID.3",
		Name:         "Volkswagen Lilly (WVWZZZE1ZMP000001)",
	}, DeviceFor(v))
}
