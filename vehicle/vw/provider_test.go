package vw

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/util"
	"golang.org/x/oauth2"
)

const (
	vin = "WVWZZZE1ZMP000001"

	vehiclesJSON = `{"data":[{"vin":"WVWZZZE1ZMP000001","model":"ID.3","nickname":"Lilly",
		"capabilities":[{"id":"charging"},{"id":"climatisation"},{"id":"parkingPosition"}]}]}`

	statusJSON = `{
	"access":{"accessStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","overallStatus":"safe","doorLockStatus":"locked",
		"doors":[{"name":"bonnet","status":["closed"]},{"name":"frontLeft","status":["locked","closed"]},{"name":"trunk","status":["unlocked","open"]}],
		"windows":[{"name":"frontLeft","status":["closed"]},{"name":"rearRight","status":["unsupported"]}]}}},
	"charging":{
		"batteryStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","currentSOC_pct":62,"cruisingRangeElectric_km":250}},
		"chargingStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","remainingChargingTimeToComplete_min":90,
			"chargingState":"charging","chargeMode":"manual","chargePower_kW":11.2,"chargeRate_kmph":60,"chargeType":"ac","chargingSettings":"default"}},
		"chargingSettings":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","maxChargeCurrentAC":"maximum",
			"autoUnlockPlugWhenCharged":"permanent","autoUnlockPlugWhenChargedAC":"off","targetSOC_pct":80}},
		"plugStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","plugConnectionState":"connected","plugLockState":"locked","externalPower":"active"}}},
	"climatisation":{
		"climatisationStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","remainingClimatisationTime_min":0,"climatisationState":"off"}},
		"climatisationSettings":{"error":{"message":"not available","code":4111}}},
	"measurements":{
		"fuelLevelStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","currentSOC_pct":61,"carType":"electric"}},
		"odometerStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","odometer":12345}},
		"temperatureBatteryStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:05:00Z","temperatureHvBatteryMin_K":293.15,"temperatureHvBatteryMax_K":295.15}}},
	"readiness":{"readinessStatus":{"value":{"connectionState":{"isOnline":true,"isActive":false}}}},
	"vehicleHealthInspection":{"maintenanceStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","inspectionDue_days":10,"inspectionDue_km":5000}}},
	"vehicleLights":{"lightsStatus":{"value":{"carCapturedTimestamp":"2023-05-01T10:00:00Z","lights":[{"name":"left","status":"on"},{"name":"right","status":"off"}]}}}
}`
)

type recorder struct {
	mu     sync.Mutex
	bodies map[string]string
}

func (r *recorder) record(req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.bodies[req.Method+" "+req.URL.Path] = string(b)
	r.mu.Unlock()
}

func newTestProvider(t *testing.T, moving bool) (*Provider, *recorder) {
	rec := &recorder{bodies: make(map[string]string)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "Bearer token", req.Header.Get("Authorization"))

		base := "/vehicle/v1/vehicles"
		switch {
		case req.URL.Path == base:
			_, _ = w.Write([]byte(vehiclesJSON))
		case req.URL.Path == base+"/"+vin+"/selectivestatus":
			require.Equal(t, strings.Join(Jobs, ","), req.URL.Query().Get("jobs"))
			_, _ = w.Write([]byte(statusJSON))
		case req.URL.Path == base+"/"+vin+"/parkingposition":
			if moving {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			_, _ = w.Write([]byte(`{"data":{"lat":52.42,"lon":10.78,"carCapturedTimestamp":"2023-05-01T10:00:00Z"}}`))
		case req.Method == http.MethodPost || req.Method == http.MethodPut:
			rec.record(req)
			_, _ = w.Write([]byte(`{"data":{"requestID":"1"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewAPI(util.NewLogger("test"), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "token"}))
	client.baseURI = srv.URL

	return NewProvider(util.NewLogger("test"), client), rec
}

func TestFetchAll(t *testing.T) {
	p, _ := newTestProvider(t, false)
	require.NoError(t, p.FetchAll(context.Background()))

	vehicles := p.Vehicles()
	require.Len(t, vehicles, 1)

	v := vehicles[0]
	require.Equal(t, vin, v.VIN)
	require.Equal(t, "Lilly", v.Name)
	require.Equal(t, "ID.3", v.Model)
	require.Equal(t, "electric", v.Type)
	require.Equal(t, api.ConnectionStateOnline, v.ConnectionState)
	require.False(t, *v.Active)
	require.Equal(t, 12345.0, *v.Odometer)
	require.Equal(t, time.Date(2023, 5, 1, 10, 5, 0, 0, time.UTC), v.CapturedAt)

	// battery status wins over fuel level
	require.Equal(t, 62, *v.Drive.Level)
	require.Equal(t, 250.0, *v.Drive.Range)
	require.InDelta(t, 20.0, *v.Drive.BatteryTempMin, 1e-9)
	require.InDelta(t, 22.0, *v.Drive.BatteryTempMax, 1e-9)

	require.Equal(t, api.ChargingStateCharging, v.Charging.State)
	require.Equal(t, "manual", v.Charging.Mode)
	require.Equal(t, "ac", v.Charging.Type)
	require.Equal(t, "default", v.Charging.SettingsMode)
	require.Equal(t, 11.2, *v.Charging.Power)
	require.Equal(t, time.Date(2023, 5, 1, 11, 30, 0, 0, time.UTC), *v.Charging.EstimatedCompletion)
	require.True(t, v.Charging.HasCommand(api.CommandStartStop))
	require.Equal(t, 80, *v.Charging.Settings.TargetSoC)
	require.Equal(t, api.ChargeSpeedMaximum, v.Charging.Settings.MaxChargeCurrentAC)
	require.Equal(t, "connected", v.Charging.Plug.ConnectionState)

	require.Equal(t, "off", v.Climatisation.State)
	require.Nil(t, v.Climatisation.Settings, "failed job")

	require.Equal(t, "locked", v.Doors.LockState)
	require.Equal(t, api.Door{LockState: "unsupported", OpenState: "closed"}, v.Doors.Doors["bonnet"])
	require.Equal(t, api.Door{LockState: "unlocked", OpenState: "open"}, v.Doors.Doors["trunk"])
	require.Equal(t, "closed", v.Windows["frontLeft"])
	require.Equal(t, "unsupported", v.Windows["rearRight"])

	require.Equal(t, api.LightStateOn, v.Lights["left"])
	require.Equal(t, time.Date(2023, 5, 11, 10, 0, 0, 0, time.UTC), *v.Maintenance.InspectionDue)
	require.Equal(t, &api.Position{Latitude: 52.42, Longitude: 10.78}, v.Position)

	_, err := p.Vehicle("wvwzzze1zmp000001")
	require.NoError(t, err)
	_, err = p.Vehicle("WVWZZZE1ZMP000009")
	require.ErrorIs(t, err, api.ErrVehicleNotFound)
}

func TestFetchAllMoving(t *testing.T) {
	p, _ := newTestProvider(t, true)
	require.NoError(t, p.FetchAll(context.Background()))
	require.Nil(t, p.Vehicles()[0].Position)
}

func TestSettings(t *testing.T) {
	p, rec := newTestProvider(t, false)
	ctx := context.Background()
	require.NoError(t, p.FetchAll(ctx))

	speed := api.ChargeSpeedReduced
	require.NoError(t, p.SetChargingSettings(ctx, vin, api.ChargingSettingsRequest{MaxChargeCurrentAC: &speed}))

	var charging ChargingSettingsRequest
	require.NoError(t, json.Unmarshal([]byte(rec.bodies["PUT /vehicle/v1/vehicles/"+vin+"/charging/settings"]), &charging))
	require.Equal(t, ChargingSettingsRequest{TargetSOCPct: 80, MaxChargeCurrentAC: "reduced"}, charging)

	require.NoError(t, p.SetClimatisationSettings(ctx, vin, api.ClimatisationSettingsRequest{TargetTemperature: 21.5}))
	require.JSONEq(t, `{"targetTemperature":21.5,"targetTemperatureUnit":"celsius"}`,
		rec.bodies["PUT /vehicle/v1/vehicles/"+vin+"/climatisation/settings"])

	require.NoError(t, p.StartCharging(ctx, vin))
	require.Contains(t, rec.bodies, "POST /vehicle/v1/vehicles/"+vin+"/charging/start")
	require.NoError(t, p.StopClimatisation(ctx, vin))
	require.Contains(t, rec.bodies, "POST /vehicle/v1/vehicles/"+vin+"/climatisation/stop")
}
