package motor

import (
	"sort"
	"sync"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

// Motor is a named pairing of a MotorType and a driver instance. It is
// owned exclusively by the Controller that created it; the driver is
// never shared between instances.
type Motor struct {
	Name string
	Type MotorType

	lock        sync.Mutex
	driver      Driver
	initialized bool
}

// Status merges driver state with the controller level fields.
type Status struct {
	Name        string    `json:"name"`
	Type        MotorType `json:"type"`
	Position    int64     `json:"position"`
	SpeedRPM    float64   `json:"speed_rpm"`
	Enabled     bool      `json:"enabled"`
	Initialized bool      `json:"initialized"`
}

// Driver exposes the underlying driver instance, mainly for the dev
// shell and tests.
func (m *Motor) Driver() Driver {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.driver
}

// Initialized reports whether the controller has successfully
// initialized this motor.
func (m *Motor) Initialized() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.initialized
}

// Controller manages the named motor instances and is the single
// authority for type/driver compatibility and initialization ordering.
// Each instance carries its own lock so independent motors can be
// operated in parallel; the controller lock only guards the namespace.
type Controller struct {
	registry *Registry

	lock   sync.RWMutex
	motors map[string]*Motor
}

// NewController creates a controller around the given registry. The
// registry is required - there is no ambient global fallback.
func NewController(registry *Registry) *Controller {
	return &Controller{
		registry: registry,
		motors:   make(map[string]*Motor),
	}
}

// Registry returns the driver registry this controller resolves against.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// CreateMotor instantiates driverName via the registry and stores a new
// uninitialized instance under name. The namespace is untouched on any
// failure. The instantiated driver must provide the capability set for
// typ; the check is a plain interface assertion, deferred to this point
// because registration itself never validates factories.
func (c *Controller) CreateMotor(name string, typ MotorType, driverName string, params Params) (*Motor, error) {
	if !typ.Valid() {
		return nil, merrors.InvalidMotorTypeError{Type: string(typ)}
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.motors[name]; ok {
		return nil, merrors.DuplicateMotorError{Name: name}
	}

	factory, err := c.registry.Resolve(driverName)
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = Params{}
	}
	driver, err := factory(params)
	if err != nil {
		return nil, err
	}

	ok := false
	switch typ {
	case Stepper:
		_, ok = driver.(StepperDriver)
	case Servo:
		_, ok = driver.(ServoDriver)
	case BLDC:
		_, ok = driver.(BLDCDriver)
	}
	if !ok {
		return nil, merrors.IncompatibleDriverError{Driver: driverName, Type: string(typ)}
	}

	m := &Motor{
		Name:   name,
		Type:   typ,
		driver: driver,
	}
	c.motors[name] = m
	return m, nil
}

// Motor returns the named instance.
func (c *Controller) Motor(name string) (*Motor, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	m, ok := c.motors[name]
	if !ok {
		return nil, merrors.MotorNotFoundError{Name: name}
	}
	return m, nil
}

// RemoveMotor shuts the driver down and removes the instance. Teardown is
// best effort: the namespace entry goes away even when Shutdown fails, so
// an unresponsive driver cannot leak its name. A shutdown failure is
// reported through the returned error.
func (c *Controller) RemoveMotor(name string) error {
	c.lock.Lock()
	m, ok := c.motors[name]
	if !ok {
		c.lock.Unlock()
		return merrors.MotorNotFoundError{Name: name}
	}
	delete(c.motors, name)
	c.lock.Unlock()

	m.lock.Lock()
	defer m.lock.Unlock()
	m.initialized = false
	return m.driver.Shutdown()
}

// InitializeMotor runs the driver's Initialize and marks the instance
// ready. Calling it again re-invokes the driver; drivers reset their own
// state on re-init.
func (c *Controller) InitializeMotor(name string, params Params) error {
	m, err := c.Motor(name)
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if params == nil {
		params = Params{}
	}
	if err := m.driver.Initialize(params); err != nil {
		return err
	}
	m.initialized = true
	return nil
}

// CommandMotion moves a stepper typed motor by steps in the given
// direction and returns the post move position.
func (c *Controller) CommandMotion(name string, steps int64, forward bool) (int64, error) {
	m, err := c.Motor(name)
	if err != nil {
		return 0, err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.initialized {
		return 0, merrors.NotInitializedError{Name: name}
	}

	stepper, ok := m.driver.(StepperDriver)
	if !ok || m.Type != Stepper {
		return 0, merrors.UnsupportedOperationError{Name: name, Action: "move_steps"}
	}

	return stepper.MoveSteps(steps, forward)
}

// SetMotorSpeed validates rpm at the boundary so no driver ever sees an
// out of range speed, then delegates.
func (c *Controller) SetMotorSpeed(name string, rpm float64) error {
	m, err := c.Motor(name)
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.initialized {
		return merrors.NotInitializedError{Name: name}
	}
	if rpm < MIN_SPEED_RPM || rpm > MAX_SPEED_RPM {
		return merrors.InvalidSpeedError{RPM: rpm}
	}

	return m.driver.SetSpeed(rpm)
}

// MotorStatus returns the driver snapshot merged with the controller
// level fields.
func (c *Controller) MotorStatus(name string) (Status, error) {
	m, err := c.Motor(name)
	if err != nil {
		return Status{}, err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	ds := m.driver.Status()
	return Status{
		Name:        m.Name,
		Type:        m.Type,
		Position:    ds.Position,
		SpeedRPM:    ds.SpeedRPM,
		Enabled:     ds.Enabled,
		Initialized: m.initialized && ds.Initialized,
	}, nil
}

// Drivers lists the registry's driver names.
func (c *Controller) Drivers() []string {
	return c.registry.Names()
}

// Motors lists the live instance names, sorted for stable output.
func (c *Controller) Motors() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	names := make([]string, 0, len(c.motors))
	for name := range c.motors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
