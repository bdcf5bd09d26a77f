package api

import "errors"

// ErrNotAvailable indicates that a value is not present in the vehicle data
var ErrNotAvailable = errors.New("not available")

// ErrMustRetry indicates that the rate-limited operation should be retried
var ErrMustRetry = errors.New("must retry")

// ErrVehicleNotFound indicates that the VIN is not part of the garage
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrNotSupported indicates that the vehicle does not support the operation
var ErrNotSupported = errors.New("not supported")

// ErrInvalidOperation indicates an unknown operation or setting value
var ErrInvalidOperation = errors.New("invalid operation")

// ErrOutOfRange indicates a setting below or above the permitted range
var ErrOutOfRange = errors.New("out of range")
