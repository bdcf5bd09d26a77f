package vw

import "time"

// Jobs are the selective status domains requested per vehicle
var Jobs = []string{
	"access", "charging", "climatisation", "fuelStatus", "measurements",
	"readiness", "vehicleHealthInspection", "vehicleLights",
}

// VehiclesResponse is the /vehicles api
type VehiclesResponse struct {
	Data []VehicleInfo `json:"data"`
}

// VehicleInfo is a garage entry
type VehicleInfo struct {
	VIN              string       `json:"vin"`
	Role             string       `json:"role"`
	EnrollmentStatus string       `json:"enrollmentStatus"`
	Model            string       `json:"model"`
	Nickname         string       `json:"nickname"`
	Capabilities     []Capability `json:"capabilities"`
}

// Capability is a vehicle feature
type Capability struct {
	ID                   string `json:"id"`
	UserDisablingAllowed bool   `json:"userDisablingAllowed"`
	Status               []int  `json:"status,omitempty"`
	ExpirationDate       string `json:"expirationDate,omitempty"`
}

// Value wraps a single status job result
type Value[T any] struct {
	Value *T     `json:"value"`
	Error *Error `json:"error"`
}

// Get returns the value or nil if it is absent or failed
func (v *Value[T]) Get() *T {
	if v == nil || v.Error != nil {
		return nil
	}
	return v.Value
}

// Error is a per job error
type Error struct {
	Message   string `json:"message"`
	ErrorTime string `json:"errorTimeStamp"`
	Info      string `json:"info"`
	Code      int    `json:"code"`
}

// StatusResponse is the /selectivestatus api
type StatusResponse struct {
	Access *struct {
		AccessStatus *Value[AccessStatus] `json:"accessStatus"`
	} `json:"access"`
	Charging *struct {
		BatteryStatus    *Value[BatteryStatus]    `json:"batteryStatus"`
		ChargingStatus   *Value[ChargingStatus]   `json:"chargingStatus"`
		ChargingSettings *Value[ChargingSettings] `json:"chargingSettings"`
		PlugStatus       *Value[PlugStatus]       `json:"plugStatus"`
	} `json:"charging"`
	Climatisation *struct {
		ClimatisationStatus   *Value[ClimatisationStatus]   `json:"climatisationStatus"`
		ClimatisationSettings *Value[ClimatisationSettings] `json:"climatisationSettings"`
	} `json:"climatisation"`
	FuelStatus *struct {
		RangeStatus *Value[RangeStatus] `json:"rangeStatus"`
	} `json:"fuelStatus"`
	Measurements *struct {
		FuelLevelStatus          *Value[FuelLevelStatus]          `json:"fuelLevelStatus"`
		OdometerStatus           *Value[OdometerStatus]           `json:"odometerStatus"`
		TemperatureBatteryStatus *Value[TemperatureBatteryStatus] `json:"temperatureBatteryStatus"`
	} `json:"measurements"`
	Readiness *struct {
		ReadinessStatus *Value[ReadinessStatus] `json:"readinessStatus"`
	} `json:"readiness"`
	VehicleHealthInspection *struct {
		MaintenanceStatus *Value[MaintenanceStatus] `json:"maintenanceStatus"`
	} `json:"vehicleHealthInspection"`
	VehicleLights *struct {
		LightsStatus *Value[LightsStatus] `json:"lightsStatus"`
	} `json:"vehicleLights"`
}

// AccessStatus is the access.accessStatus job
type AccessStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	OverallStatus        string    `json:"overallStatus"`
	DoorLockStatus       string    `json:"doorLockStatus"`
	Doors                []Opening `json:"doors"`
	Windows              []Opening `json:"windows"`
}

// Opening is a door or window with its status flags, e.g. ["locked","closed"]
type Opening struct {
	Name   string   `json:"name"`
	Status []string `json:"status"`
}

// BatteryStatus is the charging.batteryStatus job
type BatteryStatus struct {
	CarCapturedTimestamp    time.Time `json:"carCapturedTimestamp"`
	CurrentSOCPct           *int      `json:"currentSOC_pct"`
	CruisingRangeElectricKm *float64  `json:"cruisingRangeElectric_km"`
}

// ChargingStatus is the charging.chargingStatus job
type ChargingStatus struct {
	CarCapturedTimestamp               time.Time `json:"carCapturedTimestamp"`
	RemainingChargingTimeToCompleteMin *int      `json:"remainingChargingTimeToComplete_min"`
	ChargingState                      string    `json:"chargingState"`
	ChargeMode                         string    `json:"chargeMode"`
	ChargePowerKW                      *float64  `json:"chargePower_kW"`
	ChargeRateKmph                     *float64  `json:"chargeRate_kmph"`
	ChargeType                         string    `json:"chargeType"`
	ChargingSettings                   string    `json:"chargingSettings"`
}

// ChargingSettings is the charging.chargingSettings job
type ChargingSettings struct {
	CarCapturedTimestamp        time.Time `json:"carCapturedTimestamp"`
	MaxChargeCurrentAC          string    `json:"maxChargeCurrentAC"`
	AutoUnlockPlugWhenCharged   string    `json:"autoUnlockPlugWhenCharged"`
	AutoUnlockPlugWhenChargedAC string    `json:"autoUnlockPlugWhenChargedAC"`
	TargetSOCPct                *int      `json:"targetSOC_pct"`
}

// PlugStatus is the charging.plugStatus job
type PlugStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	PlugConnectionState  string    `json:"plugConnectionState"`
	PlugLockState        string    `json:"plugLockState"`
	ExternalPower        string    `json:"externalPower"`
	LedColor             string    `json:"ledColor"`
}

// ClimatisationStatus is the climatisation.climatisationStatus job
type ClimatisationStatus struct {
	CarCapturedTimestamp          time.Time `json:"carCapturedTimestamp"`
	RemainingClimatisationTimeMin *int      `json:"remainingClimatisationTime_min"`
	ClimatisationState            string    `json:"climatisationState"`
}

// ClimatisationSettings is the climatisation.climatisationSettings job
type ClimatisationSettings struct {
	CarCapturedTimestamp              time.Time `json:"carCapturedTimestamp"`
	TargetTemperatureC                *float64  `json:"targetTemperature_C"`
	ClimatisationWithoutExternalPower *bool     `json:"climatisationWithoutExternalPower"`
	ClimatizationAtUnlock             *bool     `json:"climatizationAtUnlock"`
	WindowHeatingEnabled              *bool     `json:"windowHeatingEnabled"`
}

// RangeStatus is the fuelStatus.rangeStatus job
type RangeStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	CarType              string    `json:"carType"`
	PrimaryEngine        struct {
		Type             string   `json:"type"`
		CurrentSOCPct    *int     `json:"currentSOC_pct"`
		RemainingRangeKm *float64 `json:"remainingRange_km"`
	} `json:"primaryEngine"`
	TotalRangeKm *float64 `json:"totalRange_km"`
}

// FuelLevelStatus is the measurements.fuelLevelStatus job
type FuelLevelStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	CurrentSOCPct        *int      `json:"currentSOC_pct"`
	PrimaryEngineType    string    `json:"primaryEngineType"`
	CarType              string    `json:"carType"`
}

// OdometerStatus is the measurements.odometerStatus job
type OdometerStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	Odometer             *float64  `json:"odometer"`
}

// TemperatureBatteryStatus is the measurements.temperatureBatteryStatus job
type TemperatureBatteryStatus struct {
	CarCapturedTimestamp     time.Time `json:"carCapturedTimestamp"`
	TemperatureHvBatteryMinK *float64  `json:"temperatureHvBatteryMin_K"`
	TemperatureHvBatteryMaxK *float64  `json:"temperatureHvBatteryMax_K"`
}

// ReadinessStatus is the readiness.readinessStatus job
type ReadinessStatus struct {
	ConnectionState struct {
		IsOnline                  bool   `json:"isOnline"`
		IsActive                  bool   `json:"isActive"`
		BatteryPowerLevel         string `json:"batteryPowerLevel"`
		DailyPowerBudgetAvailable bool   `json:"dailyPowerBudgetAvailable"`
	} `json:"connectionState"`
}

// MaintenanceStatus is the vehicleHealthInspection.maintenanceStatus job
type MaintenanceStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	InspectionDueDays    *int      `json:"inspectionDue_days"`
	InspectionDueKm      *float64  `json:"inspectionDue_km"`
	MileageKm            *float64  `json:"mileage_km"`
}

// LightsStatus is the vehicleLights.lightsStatus job
type LightsStatus struct {
	CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
	Lights               []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"lights"`
}

// ParkingPositionResponse is the /parkingposition api
type ParkingPositionResponse struct {
	Data struct {
		CarCapturedTimestamp time.Time `json:"carCapturedTimestamp"`
		Lat                  float64   `json:"lat"`
		Lon                  float64   `json:"lon"`
	} `json:"data"`
}

// ImagesResponse is the media vehicle-images api
type ImagesResponse struct {
	Data []struct {
		ID            string `json:"id"`
		URL           string `json:"url"`
		FileName      string `json:"fileName"`
		ViewDirection string `json:"viewDirection"`
		Angle         string `json:"angle"`
	} `json:"data"`
}

// ActionResponse is returned by command apis
type ActionResponse struct {
	Data struct {
		RequestID string `json:"requestID"`
	} `json:"data"`
}

// ChargingSettingsRequest is the charging settings payload. Empty fields are omitted.
type ChargingSettingsRequest struct {
	TargetSOCPct       int    `json:"targetSOC_pct,omitempty"`
	MaxChargeCurrentAC string `json:"maxChargeCurrentAC,omitempty"`
}

// ClimatisationSettingsRequest is the climatisation settings payload
type ClimatisationSettingsRequest struct {
	TargetTemperature     float64 `json:"targetTemperature"`
	TargetTemperatureUnit string  `json:"targetTemperatureUnit"`
}
