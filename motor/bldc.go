package motor

import (
	"sync"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

const DEFAULT_POLE_PAIRS = 7

// ExampleBLDC is the built in brushless DC driver. Speed control only;
// commutation is a hardware concern below this abstraction.
type ExampleBLDC struct {
	lock sync.Mutex

	polePairs int
	firmware  string

	position    int64
	speed       float64
	enabled     bool
	initialized bool
}

var _ BLDCDriver = &ExampleBLDC{}

func NewExampleBLDC(params Params) (Driver, error) {
	return &ExampleBLDC{
		polePairs: params.Int("pole_pairs", DEFAULT_POLE_PAIRS),
		firmware:  params.String("firmware", "0.1.0"),
	}, nil
}

// BLDCDriver marks the brushless DC capability set.
func (b *ExampleBLDC) BLDCDriver() {}

func (b *ExampleBLDC) Initialize(params Params) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if err := checkFirmware(params.String("firmware", b.firmware), DRIVER_FIRMWARE); err != nil {
		return err
	}

	b.polePairs = params.Int("pole_pairs", b.polePairs)
	b.position = 0
	b.speed = 0
	b.enabled = true
	b.initialized = true
	return nil
}

func (b *ExampleBLDC) SetSpeed(rpm float64) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if rpm < MIN_SPEED_RPM || rpm > MAX_SPEED_RPM {
		return merrors.InvalidSpeedError{RPM: rpm}
	}
	b.speed = rpm
	return nil
}

func (b *ExampleBLDC) Position() int64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.position
}

func (b *ExampleBLDC) Status() DriverStatus {
	b.lock.Lock()
	defer b.lock.Unlock()

	return DriverStatus{
		Position:    b.position,
		SpeedRPM:    b.speed,
		Enabled:     b.enabled,
		Initialized: b.initialized,
	}
}

func (b *ExampleBLDC) Shutdown() error {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.enabled = false
	b.initialized = false
	return nil
}
