package entity

import (
	"github.com/vwid-io/vwid/api"
)

// device classes and units
const (
	classTemperature = "temperature"
	classBattery     = "battery"
	classDistance    = "distance"
	classPower       = "power"
	classSpeed       = "speed"

	unitMinutes = "min"
	unitDays    = "d"
	unitCelsius = "°C"
	unitPercent = "%"
	unitKm      = "km"
	unitKW      = "kW"
	unitKmh     = "km/h"
)

func charging(f func(c *api.Charging) (interface{}, error)) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		if v.Charging == nil {
			return nil, api.ErrNotAvailable
		}
		return f(v.Charging)
	}
}

func chargingSettings(f func(s *api.ChargingSettings) (interface{}, error)) Getter {
	return charging(func(c *api.Charging) (interface{}, error) {
		if c.Settings == nil {
			return nil, api.ErrNotAvailable
		}
		return f(c.Settings)
	})
}

func plug(f func(p *api.Plug) (interface{}, error)) Getter {
	return charging(func(c *api.Charging) (interface{}, error) {
		if c.Plug == nil {
			return nil, api.ErrNotAvailable
		}
		return f(c.Plug)
	})
}

func climatisation(f func(c *api.Climatisation) (interface{}, error)) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		if v.Climatisation == nil {
			return nil, api.ErrNotAvailable
		}
		return f(v.Climatisation)
	}
}

func climatisationSettings(f func(s *api.ClimatisationSettings) (interface{}, error)) Getter {
	return climatisation(func(c *api.Climatisation) (interface{}, error) {
		if c.Settings == nil {
			return nil, api.ErrNotAvailable
		}
		return f(c.Settings)
	})
}

func drive(f func(d *api.ElectricDrive) (interface{}, error)) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		if v.Drive == nil {
			return nil, api.ErrNotAvailable
		}
		return f(v.Drive)
	}
}

func maintenance(f func(m *api.Maintenance) (interface{}, error)) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		if v.Maintenance == nil {
			return nil, api.ErrNotAvailable
		}
		return f(v.Maintenance)
	}
}

func door(name string, f func(d api.Door) string) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		if v.Doors == nil {
			return nil, api.ErrNotAvailable
		}
		d, ok := v.Doors.Doors[name]
		if !ok {
			return nil, api.ErrNotAvailable
		}
		return str(f(d))
	}
}

func doorLock(name string) Getter {
	return door(name, func(d api.Door) string { return d.LockState })
}

func doorOpen(name string) Getter {
	return door(name, func(d api.Door) string { return d.OpenState })
}

func window(name string) Getter {
	return func(v *api.Vehicle) (interface{}, error) {
		state, ok := v.Windows[name]
		if !ok {
			return nil, api.ErrNotAvailable
		}
		return str(state)
	}
}

// Sensors is the sensor table
var Sensors = []Entity{
	{
		Key:   "carType",
		Name:  "Car Type",
		Icon:  "mdi:car",
		Value: func(v *api.Vehicle) (interface{}, error) { return str(v.Type) },
	},
	{
		Key:   "climatisationState",
		Name:  "Climatisation State",
		Icon:  "mdi:fan",
		Value: climatisation(func(c *api.Climatisation) (interface{}, error) { return str(c.State) }),
	},
	{
		Key:   "remainingClimatisationTime_min",
		Name:  "Remaining Climatisation Time",
		Icon:  "mdi:fan-clock",
		Unit:  unitMinutes,
		Value: climatisation(func(c *api.Climatisation) (interface{}, error) { return minutesUntil(c.EstimatedCompletion) }),
	},
	{
		Key:         "targetTemperature",
		Name:        "Target Temperature",
		DeviceClass: classTemperature,
		Unit:        unitCelsius,
		Value:       climatisationSettings(func(s *api.ClimatisationSettings) (interface{}, error) { return ptr(s.TargetTemperature) }),
	},
	{
		Key:   "chargingState",
		Name:  "Charging State",
		Icon:  "mdi:ev-station",
		Value: charging(func(c *api.Charging) (interface{}, error) { return str(c.State) }),
	},
	{
		Key:   "remainingChargingTimeToComplete_min",
		Name:  "Remaining Charging Time",
		Icon:  "mdi:battery-clock",
		Unit:  unitMinutes,
		Value: charging(func(c *api.Charging) (interface{}, error) { return minutesUntil(c.EstimatedCompletion) }),
	},
	{
		Key:   "chargeMode",
		Name:  "Charging Mode",
		Icon:  "mdi:ev-station",
		Value: charging(func(c *api.Charging) (interface{}, error) { return str(c.Mode) }),
	},
	{
		Key:         "chargePower_kW",
		Name:        "Charge Power",
		DeviceClass: classPower,
		Unit:        unitKW,
		Value:       charging(func(c *api.Charging) (interface{}, error) { return ptr(c.Power) }),
	},
	{
		Key:         "chargeRate_kmph",
		Name:        "Charge Rate",
		DeviceClass: classSpeed,
		Unit:        unitKmh,
		Value:       charging(func(c *api.Charging) (interface{}, error) { return ptr(c.Rate) }),
	},
	{
		Key:   "chargingSettings",
		Name:  "Charging Settings",
		Icon:  "mdi:ev-station",
		Value: charging(func(c *api.Charging) (interface{}, error) { return str(c.SettingsMode) }),
	},
	{
		Key:   "chargeType",
		Name:  "Charge Type",
		Icon:  "mdi:ev-station",
		Value: charging(func(c *api.Charging) (interface{}, error) { return str(c.Type) }),
	},
	{
		Key:   "maxChargeCurrentAC",
		Name:  "Max Charge Current AC",
		Icon:  "mdi:ev-station",
		Value: chargingSettings(func(s *api.ChargingSettings) (interface{}, error) { return str(s.MaxChargeCurrentAC) }),
	},
	{
		Key:         "targetSOC_pct",
		Name:        "Target State of Charge",
		DeviceClass: classBattery,
		Unit:        unitPercent,
		Value:       chargingSettings(func(s *api.ChargingSettings) (interface{}, error) { return ptr(s.TargetSoC) }),
	},
	{
		Key:         "currentSOC_pct",
		Name:        "State of Charge",
		DeviceClass: classBattery,
		Unit:        unitPercent,
		Value:       drive(func(d *api.ElectricDrive) (interface{}, error) { return ptr(d.Level) }),
	},
	{
		Key:         "cruisingRangeElectric",
		Name:        "Range",
		Icon:        "mdi:car-arrow-right",
		DeviceClass: classDistance,
		Unit:        unitKm,
		Value:       drive(func(d *api.ElectricDrive) (interface{}, error) { return ptr(d.Range) }),
	},
	{
		Key:   "inspectionDue",
		Name:  "Health Inspection",
		Icon:  "mdi:wrench-clock-outline",
		Unit:  unitDays,
		Value: maintenance(func(m *api.Maintenance) (interface{}, error) { return daysUntil(m.InspectionDue) }),
	},
	{
		Key:         "inspectionDuekm",
		Name:        "Health Inspection km",
		Icon:        "mdi:wrench-clock-outline",
		DeviceClass: classDistance,
		Unit:        unitKm,
		Value:       maintenance(func(m *api.Maintenance) (interface{}, error) { return ptr(m.InspectionDueKm) }),
	},
	{
		Key:         "odometer",
		Name:        "Odometer",
		Icon:        "mdi:car-cruise-control",
		DeviceClass: classDistance,
		Unit:        unitKm,
		Value:       func(v *api.Vehicle) (interface{}, error) { return ptr(v.Odometer) },
	},
	{
		Key:  "doorLockStatus",
		Name: "Door Lock Status",
		Icon: "mdi:car-door-lock",
		Value: func(v *api.Vehicle) (interface{}, error) {
			if v.Doors == nil {
				return nil, api.ErrNotAvailable
			}
			return str(v.Doors.LockState)
		},
	},
	{Key: "bonnetLockStatus", Name: "Bonnet Lock Status", Icon: "mdi:lock-outline", Value: doorLock("bonnet")},
	{Key: "trunkLockStatus", Name: "Trunk Lock Status", Icon: "mdi:lock-outline", Value: doorLock("trunk")},
	{Key: "rearRightLockStatus", Name: "Door Rear Right Lock Status", Icon: "mdi:car-door-lock", Value: doorLock("rearRight")},
	{Key: "rearLeftLockStatus", Name: "Door Rear Left Lock Status", Icon: "mdi:car-door-lock", Value: doorLock("rearLeft")},
	{Key: "frontLeftLockStatus", Name: "Door Front Left Lock Status", Icon: "mdi:car-door-lock", Value: doorLock("frontLeft")},
	{Key: "frontRightLockStatus", Name: "Door Front Right Lock Status", Icon: "mdi:car-door-lock", Value: doorLock("frontRight")},
	{Key: "bonnetOpenStatus", Name: "Bonnet Open Status", Value: doorOpen("bonnet")},
	{Key: "trunkOpenStatus", Name: "Trunk Open Status", Value: doorOpen("trunk")},
	{Key: "rearRightOpenStatus", Name: "Door Rear Right Open Status", Icon: "mdi:car-door", Value: doorOpen("rearRight")},
	{Key: "rearLeftOpenStatus", Name: "Door Rear Left Open Status", Icon: "mdi:car-door", Value: doorOpen("rearLeft")},
	{Key: "frontLeftOpenStatus", Name: "Door Front Left Open Status", Icon: "mdi:car-door", Value: doorOpen("frontLeft")},
	{Key: "frontRightOpenStatus", Name: "Door Front Right Open Status", Icon: "mdi:car-door", Value: doorOpen("frontRight")},
	{Key: "sunRoofStatus", Name: "Sunroof Open Status", Value: doorOpen("sunRoof")},
	{Key: "roofCoverStatus", Name: "Sunroof Cover Status", Value: doorOpen("roofCover")},
	{Key: "windowRearRightOpenStatus", Name: "Window Rear Right Open Status", Icon: "mdi:window-closed", Value: window("rearRight")},
	{Key: "windowRearLeftOpenStatus", Name: "Window Rear Left Open Status", Icon: "mdi:window-closed", Value: window("rearLeft")},
	{Key: "windowFrontLeftOpenStatus", Name: "Window Front Left Open Status", Icon: "mdi:window-closed", Value: window("frontLeft")},
	// key spelling kept for existing unique ids
	{Key: "windowfrontRightOpenStatus", Name: "Window Front Right Open Status", Icon: "mdi:window-closed", Value: window("frontRight")},
	{
		Key:   "autoUnlockPlugWhenCharged",
		Name:  "Auto Unlock Plug When Charged",
		Icon:  "mdi:ev-plug-type2",
		Value: chargingSettings(func(s *api.ChargingSettings) (interface{}, error) { return str(s.AutoUnlock) }),
	},
	{
		Key:   "autoUnlockPlugWhenChargedAC",
		Name:  "Auto Unlock Plug When Charged AC",
		Icon:  "mdi:ev-plug-type2",
		Value: chargingSettings(func(s *api.ChargingSettings) (interface{}, error) { return str(s.AutoUnlockAC) }),
	},
	{
		Key:   "plugConnectionState",
		Name:  "Plug Connection State",
		Icon:  "mdi:ev-plug-type2",
		Value: plug(func(p *api.Plug) (interface{}, error) { return str(p.ConnectionState) }),
	},
	{
		Key:   "plugLockState",
		Name:  "Plug Lock State",
		Icon:  "mdi:ev-plug-type2",
		Value: plug(func(p *api.Plug) (interface{}, error) { return str(p.LockState) }),
	},
	{
		Key:         "hvBatteryTemperatureMin",
		Name:        "HV Battery Temperature Min",
		Icon:        "mdi:thermometer",
		DeviceClass: classTemperature,
		Unit:        unitCelsius,
		Value:       drive(func(d *api.ElectricDrive) (interface{}, error) { return ptr(d.BatteryTempMin) }),
	},
	{
		Key:         "hvBatteryTemperatureMax",
		Name:        "HV Battery Temperature Max",
		Icon:        "mdi:thermometer",
		DeviceClass: classTemperature,
		Unit:        unitCelsius,
		Value:       drive(func(d *api.ElectricDrive) (interface{}, error) { return ptr(d.BatteryTempMax) }),
	},
}

func init() {
	for i := range Sensors {
		Sensors[i].Component = Sensor
	}
}
