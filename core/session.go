package core

import (
	"errors"
	"sync"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/storage"
	"github.com/vwid-io/vwid/push"
	"github.com/vwid-io/vwid/util"
)

// Sessions tracks charging sessions per vehicle
type Sessions struct {
	log      *util.Logger
	mu       sync.Mutex
	charging map[string]bool
	tx       map[string]storage.Transaction
	pushChan chan<- push.Event

	// NewTransaction creates the session recorder, storage.NewTransactor by default
	NewTransaction func(vin string) storage.Transaction
}

// NewSessions creates a session tracker
func NewSessions(log *util.Logger) *Sessions {
	return &Sessions{
		log:            log,
		charging:       make(map[string]bool),
		tx:             make(map[string]storage.Transaction),
		NewTransaction: storage.NewTransactor,
	}
}

// Prepare attaches the push channel
func (s *Sessions) Prepare(pushChan chan<- push.Event) {
	s.mu.Lock()
	s.pushChan = pushChan
	s.mu.Unlock()
}

func soc(v *api.Vehicle) float64 {
	if v.Drive != nil && v.Drive.Level != nil {
		return float64(*v.Drive.Level)
	}
	return 0
}

// Update compares the charging state with the previous snapshot and records
// session start and end. The first snapshot of a vehicle only sets the baseline.
func (s *Sessions) Update(v *api.Vehicle) {
	if v.Charging == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	charging := v.Charging.State == api.ChargingStateCharging
	prev, known := s.charging[v.VIN]
	s.charging[v.VIN] = charging

	if !known || prev == charging {
		return
	}

	event := push.ChargingStop
	if charging {
		event = push.ChargingStart
		s.log.INFO.Printf("%s: charging started at %.0f%%", v.VIN, soc(v))

		tx := s.NewTransaction(v.VIN)
		s.tx[v.VIN] = tx
		s.check(tx.Start(soc(v)))
	} else {
		s.log.INFO.Printf("%s: charging stopped at %.0f%%", v.VIN, soc(v))

		if tx, ok := s.tx[v.VIN]; ok {
			s.check(tx.Stop(soc(v)))
			delete(s.tx, v.VIN)
		}
	}

	if s.pushChan != nil {
		select {
		case s.pushChan <- push.Event{Vehicle: v.VIN, Event: event}:
		default:
		}
	}
}

func (s *Sessions) check(err error) {
	if err != nil && !errors.Is(err, storage.ErrNotOpen) {
		s.log.ERROR.Printf("session: %v", err)
	}
}
