package util

import "fmt"

// Param is the broadcast channel data type
type Param struct {
	Vehicle string // VIN, empty for global values
	Key     string
	Val     interface{}
}

// UniqueID returns unique identifier for parameter Vehicle/Key combination
func (p Param) UniqueID() string {
	if p.Vehicle == "" {
		return p.Key
	}

	return fmt.Sprintf("%s-%s", p.Vehicle, p.Key)
}
