package server

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core"
	"github.com/vwid-io/vwid/core/entity"
	"github.com/vwid-io/vwid/provider"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/mqtt"
	"github.com/vwid-io/vwid/vehicle"
)

type message struct {
	topic    string
	retained bool
	payload  interface{}
}

type publisher struct {
	mu       sync.Mutex
	messages []message
	listen   map[string]mqtt.Callback
}

func (p *publisher) Publish(topic string, retained bool, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message{topic, retained, payload})
	return nil
}

func (p *publisher) Listen(topic string, callback mqtt.Callback) error {
	if p.listen == nil {
		p.listen = make(map[string]mqtt.Callback)
	}
	p.listen[topic] = callback
	return nil
}

func (p *publisher) find(topic string) (message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := len(p.messages) - 1; i >= 0; i-- {
		if p.messages[i].topic == topic {
			return p.messages[i], true
		}
	}
	return message{}, false
}

type garage vehicle.Garage

func (g garage) Vehicles() []*api.Vehicle {
	return g
}

func (g garage) Vehicle(vin string) (*api.Vehicle, error) {
	return vehicle.EnsureVehicle(vin, vehicle.Garage(g).List)
}

func (g garage) Image(ctx context.Context, vin string) (api.Image, error) {
	return api.Image{ContentType: "image/png", Data: []byte(vin)}, nil
}

type call struct {
	method string
	vin    string
	args   []interface{}
}

type commander struct {
	calls []call
}

func (c *commander) add(method, vin string, args ...interface{}) error {
	c.calls = append(c.calls, call{method, vin, args})
	return nil
}

func (c *commander) StartStopCharging(vin string, op api.Operation) error {
	return c.add("charging", vin, op)
}

func (c *commander) StartStopClimatisation(vin string, op api.Operation) error {
	return c.add("climatisation", vin, op)
}

func (c *commander) SetClimatisation(vin string, op *api.Operation, temp float64) error {
	return c.add("setclimatisation", vin, op, temp)
}

func (c *commander) SetClimatisationTemperature(vin string, temp float64) error {
	return c.add("temperature", vin, temp)
}

func (c *commander) SetTargetSoC(vin string, soc int) error {
	return c.add("soc", vin, soc)
}

func (c *commander) SetACChargeSpeed(vin string, speed api.ChargeSpeed) error {
	return c.add("speed", vin, speed)
}

func (c *commander) ToggleACChargeSpeed(vin string) error {
	return c.add("toggle", vin)
}

const vin = "WVWZZZE1ZMP000001"

func testGarage() garage {
	return garage{{VIN: vin, Name: "Ida", Model: "ID.3"}}
}

func TestEncode(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		in  interface{}
		out string
	}{
		{nil, "None"},
		{"charging", "charging"},
		{true, "true"},
		{80, "80"},
		{21.5, "21.5"},
		{ts, "2024-05-01T12:00:00Z"},
		{time.Time{}, "None"},
		{api.LightStateOn, "on"},
		{entity.Location{Latitude: 52.1, Longitude: 10.2, SourceType: "gps"}, `{"latitude":52.1,"longitude":10.2,"source_type":"gps"}`},
		{[]string{"A", "B"}, `["A","B"]`},
	} {
		require.Equal(t, tc.out, Encode(tc.in), "%v", tc.in)
	}
}

func TestTopics(t *testing.T) {
	topics := Topics{Root: "vwid"}

	require.Equal(t, "vwid/status", topics.Status())
	require.Equal(t, "vwid/VIN/currentSOC_pct", topics.State("VIN", "currentSOC_pct"))
	require.Equal(t, "vwid/VIN/start_charging/set", topics.Set("VIN", "start_charging"))
	require.Equal(t, "vwid/VIN/service/set_target_soc", topics.Service("VIN", "set_target_soc"))

	v, rest, ok := topics.Parse("vwid/VIN/start_charging/set")
	require.True(t, ok)
	require.Equal(t, "VIN", v)
	require.Equal(t, []string{"start_charging", "set"}, rest)

	_, _, ok = topics.Parse("other/VIN/start_charging/set")
	require.False(t, ok)

	_, _, ok = topics.Parse("vwid/status")
	require.False(t, ok)
}

func TestDiscovery(t *testing.T) {
	topics := Topics{Root: "vwid"}
	v := testGarage()[0]

	soc, _ := entity.Find("currentSOC_pct")
	require.Equal(t, "homeassistant/sensor/"+vin+"-currentSOC_pct/config", DiscoveryTopic(soc, vin))

	d := NewDiscovery(topics, soc, v, "http://vwid:7090")
	require.Equal(t, "vwid/"+vin+"/currentSOC_pct", d.Base)
	require.Equal(t, "~", d.StateTopic)
	require.Empty(t, d.CommandTopic)
	require.Equal(t, vin+"-currentSOC_pct", d.UniqueID)
	require.Equal(t, []string{"vw" + vin}, d.Device.Identifiers)
	require.Equal(t, "Volkswagen", d.Device.Manufacturer)
	require.Equal(t, "http://vwid:7090", d.Device.ConfigurationURL)
	require.Equal(t, "vwid/status", d.AvailabilityTopic)
	require.Equal(t, "measurement", d.StateClass)

	number, _ := entity.Find("target_state_of_charge")
	d = NewDiscovery(topics, number, v, "")
	require.Equal(t, "~/set", d.CommandTopic)
	require.Equal(t, 10.0, *d.Min)
	require.Equal(t, 100.0, *d.Max)
	require.Equal(t, "config", d.EntityCategory)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Contains(t, string(b), `"~":"vwid/`+vin+`/target_state_of_charge"`)
	require.NotContains(t, string(b), "configuration_url")

	d = NewDiscovery(topics, entity.Tracker, v, "")
	require.Equal(t, "~", d.JSONAttributesTopic)
	require.Empty(t, d.StateTopic)

	d = NewDiscovery(topics, entity.Image, v, "")
	require.Equal(t, "~", d.Topic)
	require.Equal(t, vin+"-Image", d.UniqueID)
	require.Equal(t, "Volkswagen ID Ida Image", d.Name)
}

func TestMQTTRun(t *testing.T) {
	pub := new(publisher)
	m := NewMQTT(pub, "vwid", testGarage(), new(commander))

	in := make(chan util.Param, 10)
	in <- util.Param{Key: "vehicles", Val: []string{vin}}
	in <- util.Param{Vehicle: vin, Key: "currentSOC_pct", Val: 62}
	in <- util.Param{Vehicle: vin, Key: "chargePower_kW", Val: nil}
	close(in)

	m.Run(in)

	msg, ok := pub.find("vwid/" + vin + "/currentSOC_pct")
	require.True(t, ok)
	require.True(t, msg.retained)
	require.Equal(t, "62", msg.payload)

	msg, ok = pub.find("vwid/" + vin + "/chargePower_kW")
	require.True(t, ok)
	require.Equal(t, "None", msg.payload)

	msg, ok = pub.find("vwid/vehicles")
	require.True(t, ok)
	require.Equal(t, `["`+vin+`"]`, msg.payload)

	// discovery for every entity
	for _, e := range entity.All() {
		msg, ok := pub.find(DiscoveryTopic(e, vin))
		require.True(t, ok, e.Key)
		require.True(t, msg.retained)
	}

	// image is published asynchronously
	require.Eventually(t, func() bool {
		msg, ok := pub.find("vwid/" + vin + "/Image")
		return ok && string(msg.payload.([]byte)) == vin
	}, time.Second, 10*time.Millisecond)
}

func TestMQTTCommands(t *testing.T) {
	pub := new(publisher)
	cmd := new(commander)
	m := NewMQTT(pub, "vwid", testGarage(), cmd)

	require.NoError(t, m.Listen())
	require.Len(t, pub.listen, 2)

	pub.listen["vwid/+/+/set"]("vwid/"+vin+"/start_charging/set", []byte("PRESS"))
	pub.listen["vwid/+/+/set"]("vwid/"+vin+"/target_state_of_charge/set", []byte("70"))
	pub.listen["vwid/+/+/set"]("vwid/"+vin+"/currentSOC_pct/set", []byte("70"))
	pub.listen["vwid/+/service/+"]("vwid/"+vin+"/service/set_ac_charge_speed", []byte(`{"maximum_reduced":"Reduced"}`))

	require.Equal(t, []call{
		{"charging", vin, []interface{}{api.OperationStart}},
		{"soc", vin, []interface{}{70}},
		{"speed", vin, []interface{}{api.ChargeSpeedReduced}},
	}, cmd.calls)
}

func TestCallService(t *testing.T) {
	cmd := new(commander)

	require.NoError(t, CallService(cmd, vin, ServiceStartStopCharging, []byte(`{"start_stop":"Stop"}`)))
	require.NoError(t, CallService(cmd, vin, ServiceSetTargetSoC, []byte(`{"vin":"OTHER","target_soc":80}`)))
	require.NoError(t, CallService(cmd, vin, ServiceSetClimatisation, []byte(`{"target_temp":21.5}`)))

	start := api.OperationStart
	require.NoError(t, CallService(cmd, vin, ServiceSetClimatisation, []byte(`{"start_stop":"start","target_temp":20}`)))

	require.ErrorIs(t, CallService(cmd, vin, "unlock", nil), api.ErrNotSupported)
	require.Error(t, CallService(cmd, vin, ServiceSetTargetSoC, []byte(`{`)))

	require.Equal(t, []call{
		{"charging", vin, []interface{}{api.Operation("Stop")}},
		{"soc", "OTHER", []interface{}{80}},
		{"setclimatisation", vin, []interface{}{(*api.Operation)(nil), 21.5}},
		{"setclimatisation", vin, []interface{}{&start, 20.0}},
	}, cmd.calls)
}

func TestCallServiceCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := api.NewMockConnector(ctrl)

	v := testGarage()[0]
	v.Charging = &api.Charging{
		State:    api.ChargingStateReady,
		Commands: []string{api.CommandStartStop},
		Settings: &api.ChargingSettings{MaxChargeCurrentAC: api.ChargeSpeedMaximum},
	}
	conn.EXPECT().Vehicle(vin).Return(v, nil).AnyTimes()

	cmd := core.NewCommands(core.NewCoordinator(conn, nil, provider.NewThrottle(time.Hour)))

	conn.EXPECT().StartCharging(gomock.Any(), vin).Return(nil).Times(2)
	require.NoError(t, CallService(cmd, vin, ServiceStartStopCharging, []byte(`{"start_stop":"start "}`)))
	require.NoError(t, CallService(cmd, vin, ServiceStartStopCharging, []byte(`{"start_stop":"START"}`)))

	// already at maximum
	require.NoError(t, CallService(cmd, vin, ServiceSetACChargeSpeed, []byte(`{"maximum_reduced":"Maximum"}`)))

	require.ErrorIs(t, CallService(cmd, vin, ServiceStartStopCharging, []byte(`{"start_stop":"pause"}`)), api.ErrInvalidOperation)
}

func TestSetEntity(t *testing.T) {
	cmd := new(commander)

	require.NoError(t, SetEntity(cmd, vin, "toggle_ac_charge_speed", "PRESS"))
	require.NoError(t, SetEntity(cmd, vin, "target_climate_temperature", "22.5"))

	require.Error(t, SetEntity(cmd, vin, "target_climate_temperature", "warm"))
	require.ErrorIs(t, SetEntity(cmd, vin, "unknown", ""), api.ErrNotSupported)
	require.ErrorIs(t, SetEntity(cmd, vin, "odometer", "1"), api.ErrNotSupported)

	require.Equal(t, []call{
		{"toggle", vin, nil},
		{"temperature", vin, []interface{}{22.5}},
	}, cmd.calls)
}
