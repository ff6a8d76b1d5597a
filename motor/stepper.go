package motor

import (
	"sync"

	"github.com/Masterminds/semver"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

const (
	DRIVER_FIRMWARE = "~0.1.0"

	DEFAULT_STEP_PIN   = 18
	DEFAULT_DIR_PIN    = 19
	DEFAULT_ENABLE_PIN = 20
	DEFAULT_MICROSTEPS = 1
	DEFAULT_SPEED_RPM  = 60

	MIN_SPEED_RPM = 0
	MAX_SPEED_RPM = 1000
)

// ExampleStepper is the built in stepper driver. It tracks logical
// position only; pulse generation belongs to the hardware beneath this
// abstraction and is simulated here.
//
// States: uninitialized -> ready -> (moving, transient) -> ready, and
// ready -> shutdown. Shutdown disables control, not memory: the last
// position survives until the next Initialize.
type ExampleStepper struct {
	lock sync.Mutex

	stepPin, dirPin, enablePin int
	microsteps                 int
	firmware                   string

	position    int64
	speed       float64
	enabled     bool
	initialized bool
}

var _ StepperDriver = &ExampleStepper{}

// NewExampleStepper builds a stepper driver from construction params.
// Pins default to the standard 18/19/20 assignment.
func NewExampleStepper(params Params) (Driver, error) {
	return &ExampleStepper{
		stepPin:    params.Int("step_pin", DEFAULT_STEP_PIN),
		dirPin:     params.Int("dir_pin", DEFAULT_DIR_PIN),
		enablePin:  params.Int("enable_pin", DEFAULT_ENABLE_PIN),
		microsteps: params.Int("microsteps", DEFAULT_MICROSTEPS),
		firmware:   params.String("firmware", "0.1.0"),
	}, nil
}

// Initialize records the pin assignment and resets all state. A repeat
// call starts fresh - nothing accumulates across re-inits.
func (s *ExampleStepper) Initialize(params Params) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := checkFirmware(params.String("firmware", s.firmware), DRIVER_FIRMWARE); err != nil {
		return err
	}

	s.stepPin = params.Int("step_pin", s.stepPin)
	s.dirPin = params.Int("dir_pin", s.dirPin)
	s.enablePin = params.Int("enable_pin", s.enablePin)
	s.microsteps = params.Int("microsteps", s.microsteps)

	s.position = 0
	s.speed = DEFAULT_SPEED_RPM
	s.enabled = true
	s.initialized = true
	return nil
}

// MoveSteps applies the commanded step count to the logical position.
// Direction comes from the forward flag only; a negative count is an
// error, never a reverse move.
func (s *ExampleStepper) MoveSteps(count int64, forward bool) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.initialized {
		return s.position, merrors.NotInitializedError{Name: ExampleStepperDriver}
	}
	if !s.enabled {
		return s.position, merrors.DriverDisabledError{Name: ExampleStepperDriver}
	}
	if count < 0 {
		return s.position, merrors.InvalidStepCountError{Count: count}
	}

	if forward {
		s.position += count
	} else {
		s.position -= count
	}
	return s.position, nil
}

// SetSpeed stores the commanded speed. It does not require Initialize,
// though it is typically called after.
func (s *ExampleStepper) SetSpeed(rpm float64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if rpm < MIN_SPEED_RPM || rpm > MAX_SPEED_RPM {
		return merrors.InvalidSpeedError{RPM: rpm}
	}
	s.speed = rpm
	return nil
}

// Position always answers with the last known position, 0 if the driver
// was never initialized.
func (s *ExampleStepper) Position() int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.position
}

func (s *ExampleStepper) Status() DriverStatus {
	s.lock.Lock()
	defer s.lock.Unlock()

	return DriverStatus{
		Position:    s.position,
		SpeedRPM:    s.speed,
		Enabled:     s.enabled,
		Initialized: s.initialized,
	}
}

// Shutdown disables the driver. Position is retained deliberately so a
// status query after shutdown still reports where the motor stopped.
func (s *ExampleStepper) Shutdown() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.enabled = false
	s.initialized = false
	return nil
}

// Pins exposes the recorded pin assignment for status/logging.
func (s *ExampleStepper) Pins() (step, dir, enable int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.stepPin, s.dirPin, s.enablePin
}

// checkFirmware gates a driver on its reported firmware version, the same
// way control nodes are version checked before use. "DEV" identifies a
// direct development build and is allowed through.
func checkFirmware(version, constraint string) error {
	if version == "DEV" {
		// running a direct dev version, consider it safe for now
		// todo: require a flag via config/env before accepting DEV builds
		return nil
	}

	semVer, err := semver.NewVersion(version)
	if err != nil {
		return merrors.FirmwareVersionError{Version: version, Constraint: constraint}
	}

	semVerConstraint, err := semver.NewConstraint(constraint)
	if err != nil {
		return err
	}

	if !semVerConstraint.Check(semVer) {
		return merrors.FirmwareVersionError{Version: version, Constraint: constraint}
	}
	return nil
}
