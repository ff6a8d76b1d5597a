package motor

import (
	"sync"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

const DEFAULT_SERVO_PIN = 12

// ExampleServo is the built in servo driver. Like the simulated sensor
// boards it stands in for real hardware: it keeps a logical position and
// commanded speed without generating any PWM.
type ExampleServo struct {
	lock sync.Mutex

	pwmPin   int
	firmware string

	position    int64
	speed       float64
	enabled     bool
	initialized bool
}

var _ ServoDriver = &ExampleServo{}

func NewExampleServo(params Params) (Driver, error) {
	return &ExampleServo{
		pwmPin:   params.Int("pwm_pin", DEFAULT_SERVO_PIN),
		firmware: params.String("firmware", "0.1.0"),
	}, nil
}

// ServoDriver marks the servo capability set.
func (s *ExampleServo) ServoDriver() {}

func (s *ExampleServo) Initialize(params Params) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := checkFirmware(params.String("firmware", s.firmware), DRIVER_FIRMWARE); err != nil {
		return err
	}

	s.pwmPin = params.Int("pwm_pin", s.pwmPin)
	s.position = 0
	s.speed = DEFAULT_SPEED_RPM
	s.enabled = true
	s.initialized = true
	return nil
}

func (s *ExampleServo) SetSpeed(rpm float64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if rpm < MIN_SPEED_RPM || rpm > MAX_SPEED_RPM {
		return merrors.InvalidSpeedError{RPM: rpm}
	}
	s.speed = rpm
	return nil
}

func (s *ExampleServo) Position() int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.position
}

func (s *ExampleServo) Status() DriverStatus {
	s.lock.Lock()
	defer s.lock.Unlock()

	return DriverStatus{
		Position:    s.position,
		SpeedRPM:    s.speed,
		Enabled:     s.enabled,
		Initialized: s.initialized,
	}
}

func (s *ExampleServo) Shutdown() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.enabled = false
	s.initialized = false
	return nil
}
