package errors

import "fmt"

type InvalidMotorTypeError struct {
	Type string
}

func (err InvalidMotorTypeError) Error() string {
	return fmt.Sprintf("invalid motor type %q", err.Type)
}

type DuplicateMotorError struct {
	Name string
}

func (err DuplicateMotorError) Error() string {
	return fmt.Sprintf("motor %s already exists", err.Name)
}

type MotorNotFoundError struct {
	Name string
}

func (err MotorNotFoundError) Error() string {
	return fmt.Sprintf("no such motor %s", err.Name)
}

type DriverNotFoundError struct {
	Driver string
}

func (err DriverNotFoundError) Error() string {
	return fmt.Sprintf("no such driver %s", err.Driver)
}

type IncompatibleDriverError struct {
	Driver string
	Type   string
}

func (err IncompatibleDriverError) Error() string {
	if len(err.Driver) == 0 {
		err.Driver = "UNKOWN"
	}

	return fmt.Sprintf("incompatible driver; driver %s does not provide the %s capability set", err.Driver, err.Type)
}

type NotInitializedError struct {
	Name string
}

func (err NotInitializedError) Error() string {
	return fmt.Sprintf("motor %s is not initialized", err.Name)
}

type DriverDisabledError struct {
	Name string
}

func (err DriverDisabledError) Error() string {
	return fmt.Sprintf("driver %s is disabled", err.Name)
}

type InvalidSpeedError struct {
	RPM float64
}

func (err InvalidSpeedError) Error() string {
	return fmt.Sprintf("speed %g RPM is outside the valid range [0, 1000]", err.RPM)
}

type InvalidStepCountError struct {
	Count int64
}

func (err InvalidStepCountError) Error() string {
	return fmt.Sprintf("invalid step count %d; direction is set by the forward flag, not a sign", err.Count)
}

type UnsupportedOperationError struct {
	Name   string
	Action string
}

func (err UnsupportedOperationError) Error() string {
	if len(err.Action) == 0 {
		err.Action = "UNKOWN"
	}

	return fmt.Sprintf("unsupported operation; motor %s is unable to perform action %s", err.Name, err.Action)
}

type FirmwareVersionError struct {
	Version    string
	Constraint string
}

func (err FirmwareVersionError) Error() string {
	return fmt.Sprintf("unable to use driver firmware: recieved version %s - require %s", err.Version, err.Constraint)
}
