package motor

import (
	"sync"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

// Built in driver names, one per MotorType.
const (
	ExampleStepperDriver = "example_stepper_driver"
	ExampleServoDriver   = "example_servo_driver"
	ExampleBLDCDriver    = "example_bldc_driver"
)

// Registry maps driver names to factories. It is an explicit object owned
// by the controller rather than process wide state; entries outlive any
// motor instance built from them.
type Registry struct {
	lock    sync.RWMutex
	entries map[string]Factory
	order   []string
	cache   map[string]Factory
}

// NewRegistry creates a registry seeded with the built in drivers.
func NewRegistry() (r *Registry) {
	r = &Registry{
		entries: make(map[string]Factory),
		cache:   make(map[string]Factory),
	}

	// built ins are listed first, in this order
	r.Register(ExampleStepperDriver, NewExampleStepper)
	r.Register(ExampleServoDriver, NewExampleServo)
	r.Register(ExampleBLDCDriver, NewExampleBLDC)

	return
}

// Register stores or overwrites the factory for name. Last write wins; a
// re-registered name keeps its original position in the listing order.
// No capability validation happens here - that is deferred until a motor
// is created from the entry.
func (r *Registry) Register(name string, factory Factory) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.entries[name]; !ok {
		r.order = append(r.order, name)
	}
	r.entries[name] = factory
	delete(r.cache, name)
}

// Resolve looks up the factory for name. Successful lookups are cached so
// repeated resolution of the same name stays O(1).
func (r *Registry) Resolve(name string) (Factory, error) {
	r.lock.RLock()
	factory, ok := r.cache[name]
	r.lock.RUnlock()
	if ok {
		return factory, nil
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	factory, ok = r.entries[name]
	if !ok {
		return nil, merrors.DriverNotFoundError{Driver: name}
	}
	r.cache[name] = factory
	return factory, nil
}

// Names returns the registered driver names, built ins first followed by
// custom registrations in registration order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
