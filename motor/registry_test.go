package motor

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

// taggedStepper lets tests tell apart which factory produced a driver.
type taggedStepper struct {
	ExampleStepper
	tag string
}

func taggedFactory(tag string) Factory {
	return func(params Params) (Driver, error) {
		return &taggedStepper{tag: tag}, nil
	}
}

func TestRegistryBuiltins(t *testing.T) {
	Convey("a fresh registry", t, func() {
		r := NewRegistry()

		Convey("lists the built ins first, in order", func() {
			names := r.Names()
			So(len(names), ShouldBeGreaterThanOrEqualTo, 3)
			So(names[0], ShouldEqual, ExampleStepperDriver)
			So(names[1], ShouldEqual, ExampleServoDriver)
			So(names[2], ShouldEqual, ExampleBLDCDriver)
		})

		Convey("resolves every built in", func() {
			for _, name := range []string{ExampleStepperDriver, ExampleServoDriver, ExampleBLDCDriver} {
				factory, err := r.Resolve(name)
				So(err, ShouldBeNil)
				So(factory, ShouldNotBeNil)
			}
		})

		Convey("unknown names fail with DriverNotFoundError", func() {
			_, err := r.Resolve("missing_driver")
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, merrors.DriverNotFoundError{})
			So(err.Error(), ShouldContainSubstring, "missing_driver")
		})
	})
}

func TestRegistryRegistration(t *testing.T) {
	Convey("registering a custom driver", t, func() {
		r := NewRegistry()
		r.Register("custom_driver", taggedFactory("first"))

		Convey("appends after the built ins", func() {
			names := r.Names()
			So(names[len(names)-1], ShouldEqual, "custom_driver")
		})

		Convey("makes the name resolvable", func() {
			factory, err := r.Resolve("custom_driver")
			So(err, ShouldBeNil)

			d, err := factory(Params{})
			So(err, ShouldBeNil)
			So(d.(*taggedStepper).tag, ShouldEqual, "first")
		})

		Convey("re-registering the same name", func() {
			// resolve once so the cache holds the old factory
			_, err := r.Resolve("custom_driver")
			So(err, ShouldBeNil)

			r.Register("custom_driver", taggedFactory("second"))

			Convey("replaces the factory, last write wins", func() {
				factory, err := r.Resolve("custom_driver")
				So(err, ShouldBeNil)

				d, err := factory(Params{})
				So(err, ShouldBeNil)
				So(d.(*taggedStepper).tag, ShouldEqual, "second")
			})

			Convey("does not duplicate the listing entry", func() {
				count := 0
				for _, name := range r.Names() {
					if name == "custom_driver" {
						count++
					}
				}
				So(count, ShouldEqual, 1)
			})
		})

		Convey("overwriting a built in replaces the implementation used for new motors", func() {
			r.Register(ExampleStepperDriver, taggedFactory("replacement"))

			ctrl := NewController(r)
			m, err := ctrl.CreateMotor("m_replaced", Stepper, ExampleStepperDriver, nil)
			So(err, ShouldBeNil)
			So(m.Driver().(*taggedStepper).tag, ShouldEqual, "replacement")
		})
	})
}
