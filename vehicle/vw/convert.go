package vw

import (
	"time"

	"github.com/thoas/go-funk"
	"github.com/vwid-io/vwid/api"
)

const kelvin = 273.15

// door and window status flags
var (
	lockStates = []string{"locked", "unlocked"}
	openStates = []string{"open", "closed"}
)

// Convert builds the vehicle snapshot from the api responses
func Convert(info VehicleInfo, status StatusResponse, position *ParkingPositionResponse) *api.Vehicle {
	res := &api.Vehicle{
		VIN:   info.VIN,
		Name:  info.Nickname,
		Model: info.Model,
	}

	if res.Name == "" {
		res.Name = info.VIN
	}

	for _, c := range info.Capabilities {
		res.Capabilities = append(res.Capabilities, c.ID)
	}

	captured := func(ts time.Time) {
		if ts.After(res.CapturedAt) {
			res.CapturedAt = ts
		}
	}

	// type, drive and odometer
	var drive api.ElectricDrive

	if m := status.Measurements; m != nil {
		if fl := m.FuelLevelStatus.Get(); fl != nil {
			captured(fl.CarCapturedTimestamp)
			res.Type = fl.CarType
			drive.Level = fl.CurrentSOCPct
		}

		if od := m.OdometerStatus.Get(); od != nil {
			captured(od.CarCapturedTimestamp)
			res.Odometer = od.Odometer
		}

		if tb := m.TemperatureBatteryStatus.Get(); tb != nil {
			captured(tb.CarCapturedTimestamp)
			drive.BatteryTempMin = celsius(tb.TemperatureHvBatteryMinK)
			drive.BatteryTempMax = celsius(tb.TemperatureHvBatteryMaxK)
		}
	}

	if fs := status.FuelStatus; fs != nil {
		if rs := fs.RangeStatus.Get(); rs != nil {
			captured(rs.CarCapturedTimestamp)
			if res.Type == "" {
				res.Type = rs.CarType
			}
			if drive.Level == nil {
				drive.Level = rs.PrimaryEngine.CurrentSOCPct
			}
			drive.Range = rs.PrimaryEngine.RemainingRangeKm
		}
	}

	// charging
	if c := status.Charging; c != nil {
		if bs := c.BatteryStatus.Get(); bs != nil {
			captured(bs.CarCapturedTimestamp)
			if bs.CurrentSOCPct != nil {
				drive.Level = bs.CurrentSOCPct
			}
			if bs.CruisingRangeElectricKm != nil {
				drive.Range = bs.CruisingRangeElectricKm
			}
		}

		res.Charging = convertCharging(info, c.ChargingStatus.Get(), c.ChargingSettings.Get(), c.PlugStatus.Get(), captured)
	}

	if drive != (api.ElectricDrive{}) {
		res.Drive = &drive
	}

	// climatisation
	if c := status.Climatisation; c != nil {
		res.Climatisation = convertClimatisation(info, c.ClimatisationStatus.Get(), c.ClimatisationSettings.Get(), captured)
	}

	// maintenance
	if vhi := status.VehicleHealthInspection; vhi != nil {
		if ms := vhi.MaintenanceStatus.Get(); ms != nil {
			captured(ms.CarCapturedTimestamp)

			m := &api.Maintenance{
				InspectionDueKm: ms.InspectionDueKm,
			}

			if ms.InspectionDueDays != nil {
				due := reference(ms.CarCapturedTimestamp).AddDate(0, 0, *ms.InspectionDueDays)
				m.InspectionDue = &due
			}

			if res.Odometer == nil {
				res.Odometer = ms.MileageKm
			}

			res.Maintenance = m
		}
	}

	// doors and windows
	if a := status.Access; a != nil {
		if as := a.AccessStatus.Get(); as != nil {
			captured(as.CarCapturedTimestamp)

			doors := &api.Doors{
				LockState: as.DoorLockStatus,
				Doors:     make(map[string]api.Door),
			}

			for _, d := range as.Doors {
				doors.Doors[d.Name] = api.Door{
					LockState: flag(d.Status, lockStates),
					OpenState: flag(d.Status, openStates),
				}
			}
			res.Doors = doors

			res.Windows = make(map[string]string)
			for _, w := range as.Windows {
				res.Windows[w.Name] = flag(w.Status, openStates)
			}
		}
	}

	// lights
	if vl := status.VehicleLights; vl != nil {
		if ls := vl.LightsStatus.Get(); ls != nil {
			captured(ls.CarCapturedTimestamp)

			res.Lights = make(map[string]api.LightState)
			for _, l := range ls.Lights {
				res.Lights[l.Name] = api.LightState(l.Status)
			}
		}
	}

	// connectivity
	if r := status.Readiness; r != nil {
		if rs := r.ReadinessStatus.Get(); rs != nil {
			res.ConnectionState = api.ConnectionStateOffline
			if rs.ConnectionState.IsOnline {
				res.ConnectionState = api.ConnectionStateOnline
			}

			active := rs.ConnectionState.IsActive
			res.Active = &active
		}
	}

	if position != nil {
		captured(position.Data.CarCapturedTimestamp)
		res.Position = &api.Position{
			Latitude:  position.Data.Lat,
			Longitude: position.Data.Lon,
		}
	}

	return res
}

func convertCharging(info VehicleInfo, cs *ChargingStatus, settings *ChargingSettings, plug *PlugStatus, captured func(time.Time)) *api.Charging {
	if cs == nil && settings == nil && plug == nil {
		return nil
	}

	res := new(api.Charging)

	if cs != nil {
		captured(cs.CarCapturedTimestamp)

		res.State = cs.ChargingState
		res.Mode = cs.ChargeMode
		res.Type = cs.ChargeType
		res.SettingsMode = cs.ChargingSettings
		res.Power = cs.ChargePowerKW
		res.Rate = cs.ChargeRateKmph

		if cs.RemainingChargingTimeToCompleteMin != nil {
			ts := reference(cs.CarCapturedTimestamp).Add(time.Duration(*cs.RemainingChargingTimeToCompleteMin) * time.Minute)
			res.EstimatedCompletion = &ts
		}
	}

	if settings != nil {
		captured(settings.CarCapturedTimestamp)

		res.Settings = &api.ChargingSettings{
			TargetSoC:          settings.TargetSOCPct,
			MaxChargeCurrentAC: api.ChargeSpeed(settings.MaxChargeCurrentAC),
			AutoUnlock:         settings.AutoUnlockPlugWhenCharged,
			AutoUnlockAC:       settings.AutoUnlockPlugWhenChargedAC,
		}
	}

	if plug != nil {
		captured(plug.CarCapturedTimestamp)

		res.Plug = &api.Plug{
			ConnectionState: plug.PlugConnectionState,
			LockState:       plug.PlugLockState,
			ExternalPower:   plug.ExternalPower,
		}
	}

	if hasCapability(info, DomainCharging) {
		res.Commands = []string{api.CommandStartStop}
	}

	return res
}

func convertClimatisation(info VehicleInfo, cs *ClimatisationStatus, settings *ClimatisationSettings, captured func(time.Time)) *api.Climatisation {
	if cs == nil && settings == nil {
		return nil
	}

	res := new(api.Climatisation)

	if cs != nil {
		captured(cs.CarCapturedTimestamp)

		res.State = cs.ClimatisationState

		if cs.RemainingClimatisationTimeMin != nil {
			ts := reference(cs.CarCapturedTimestamp).Add(time.Duration(*cs.RemainingClimatisationTimeMin) * time.Minute)
			res.EstimatedCompletion = &ts
		}
	}

	if settings != nil {
		captured(settings.CarCapturedTimestamp)

		res.Settings = &api.ClimatisationSettings{
			TargetTemperature:    settings.TargetTemperatureC,
			WithoutExternalPower: settings.ClimatisationWithoutExternalPower,
			AtUnlock:             settings.ClimatizationAtUnlock,
			WindowHeating:        settings.WindowHeatingEnabled,
		}
	}

	if hasCapability(info, DomainClimatisation) {
		res.Commands = []string{api.CommandStartStop}
	}

	return res
}

func hasCapability(info VehicleInfo, id string) bool {
	return funk.Find(info.Capabilities, func(c Capability) bool {
		return c.ID == id
	}) != nil
}

// flag returns the first status flag out of the given set or "unsupported"
func flag(status, set []string) string {
	for _, s := range status {
		if funk.ContainsString(set, s) {
			return s
		}
	}
	return "unsupported"
}

func celsius(k *float64) *float64 {
	if k == nil {
		return nil
	}
	c := *k - kelvin
	return &c
}

// reference is the timestamp relative durations are based on
func reference(ts time.Time) time.Time {
	if ts.IsZero() {
		return time.Now()
	}
	return ts
}
