package motor

import "strconv"

// Params holds opaque construction and initialization parameters for a
// driver. Pin numbers, microstep settings etc are driver specific; the
// controller passes them through without interpreting them.
type Params map[string]interface{}

// Int returns the named parameter as an int, or def when absent or of an
// unusable kind. JSON decoded request bodies deliver numbers as float64.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// Float returns the named parameter as a float64, or def.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return def
}

// String returns the named parameter as a string, or def.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// DriverStatus is the snapshot every driver reports.
type DriverStatus struct {
	Position    int64   `json:"position"`
	SpeedRPM    float64 `json:"speed_rpm"`
	Enabled     bool    `json:"enabled"`
	Initialized bool    `json:"initialized"`
}

// Driver is the capability set common to every motor driver. A driver is
// owned by exactly one Motor instance; it is never shared.
type Driver interface {
	Initialize(params Params) error
	Shutdown() error
	Status() DriverStatus
	SetSpeed(rpm float64) error
	Position() int64
}

// StepperDriver extends Driver with stepwise motion. Direction is
// expressed solely through the forward flag; count must be non negative.
type StepperDriver interface {
	Driver

	// MoveSteps adjusts the logical position by count steps and returns
	// the new position. The update is synchronous with no partial
	// progress; on error the position is unchanged.
	MoveSteps(count int64, forward bool) (int64, error)
}

// ServoDriver marks a driver as providing the servo capability set.
type ServoDriver interface {
	Driver
	ServoDriver()
}

// BLDCDriver marks a driver as providing the brushless DC capability set.
type BLDCDriver interface {
	Driver
	BLDCDriver()
}

// Factory produces a fresh driver instance from construction parameters.
type Factory func(params Params) (Driver, error)
