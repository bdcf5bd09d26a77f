package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/storage"
	"github.com/vwid-io/vwid/push"
	"github.com/vwid-io/vwid/util"
)

type fakeTransaction struct {
	vin        string
	start, end []float64
}

func (t *fakeTransaction) Start(soc float64) error {
	t.start = append(t.start, soc)
	return nil
}

func (t *fakeTransaction) Update(*storage.Record) error {
	return nil
}

func (t *fakeTransaction) Stop(soc float64) error {
	t.end = append(t.end, soc)
	return nil
}

func charging(vin, state string, level int) *api.Vehicle {
	return &api.Vehicle{
		VIN:      vin,
		Drive:    &api.ElectricDrive{Level: &level},
		Charging: &api.Charging{State: state},
	}
}

func TestSessions(t *testing.T) {
	var txs []*fakeTransaction

	s := NewSessions(util.NewLogger("test"))
	s.NewTransaction = func(vin string) storage.Transaction {
		tx := &fakeTransaction{vin: vin}
		txs = append(txs, tx)
		return tx
	}

	pushChan := make(chan push.Event, 10)
	s.Prepare(pushChan)

	// baseline only
	s.Update(charging("A", api.ChargingStateCharging, 40))
	require.Empty(t, txs)
	require.Len(t, pushChan, 0)

	s.Update(charging("A", api.ChargingStateCharging, 45))
	s.Update(charging("A", api.ChargingStateReady, 60))
	require.Empty(t, txs)

	ev := <-pushChan
	require.Equal(t, push.ChargingStop, ev.Event)

	s.Update(charging("A", api.ChargingStateCharging, 61))
	s.Update(charging("A", api.ChargingStateCharging, 70))
	s.Update(charging("A", api.ChargingStateOff, 80))

	require.Len(t, txs, 1)
	require.Equal(t, "A", txs[0].vin)
	require.Equal(t, []float64{61}, txs[0].start)
	require.Equal(t, []float64{80}, txs[0].end)

	require.Equal(t, push.ChargingStart, (<-pushChan).Event)
	require.Equal(t, push.ChargingStop, (<-pushChan).Event)
	require.Len(t, pushChan, 0)

	// vehicles without charging information are ignored
	s.Update(&api.Vehicle{VIN: "B"})
	require.Len(t, pushChan, 0)
}

func TestSessionsWithoutStorage(t *testing.T) {
	s := NewSessions(util.NewLogger("test"))

	s.Update(charging("A", api.ChargingStateReady, 40))
	s.Update(charging("A", api.ChargingStateCharging, 41))
	s.Update(charging("A", api.ChargingStateReady, 50))
}
