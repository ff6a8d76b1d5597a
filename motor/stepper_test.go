package motor

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

func TestStepperLifecycle(t *testing.T) {
	Convey("a freshly constructed stepper", t, func() {
		d, err := NewExampleStepper(Params{})
		So(err, ShouldBeNil)
		s := d.(*ExampleStepper)

		Convey("carries the standard pin assignment", func() {
			step, dir, enable := s.Pins()
			So(step, ShouldEqual, DEFAULT_STEP_PIN)
			So(dir, ShouldEqual, DEFAULT_DIR_PIN)
			So(enable, ShouldEqual, DEFAULT_ENABLE_PIN)
		})

		Convey("is neither enabled nor initialized", func() {
			st := s.Status()
			So(st.Enabled, ShouldBeFalse)
			So(st.Initialized, ShouldBeFalse)
			So(st.Position, ShouldEqual, 0)
		})

		Convey("refuses motion before Initialize", func() {
			_, err := s.MoveSteps(10, true)
			So(err, ShouldHaveSameTypeAs, merrors.NotInitializedError{})
			So(s.Position(), ShouldEqual, 0)
		})

		Convey("accepts a speed before Initialize", func() {
			So(s.SetSpeed(120), ShouldBeNil)
			So(s.Status().SpeedRPM, ShouldEqual, 120)
		})

		Convey("once initialized", func() {
			So(s.Initialize(Params{}), ShouldBeNil)

			st := s.Status()
			So(st.Enabled, ShouldBeTrue)
			So(st.Initialized, ShouldBeTrue)
			So(st.SpeedRPM, ShouldEqual, DEFAULT_SPEED_RPM)

			Convey("moves forward and backward by the commanded count", func() {
				pos, err := s.MoveSteps(200, true)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 200)

				pos, err = s.MoveSteps(50, false)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 150)
			})

			Convey("can drive the position negative", func() {
				pos, err := s.MoveSteps(30, false)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, -30)
			})

			Convey("a zero count move is a no-op", func() {
				pos, err := s.MoveSteps(0, true)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 0)
			})

			Convey("a negative count is rejected without moving", func() {
				_, err := s.MoveSteps(-1, true)
				So(err, ShouldHaveSameTypeAs, merrors.InvalidStepCountError{})
				So(s.Position(), ShouldEqual, 0)
			})

			Convey("out of range speeds keep the last accepted value", func() {
				So(s.SetSpeed(250), ShouldBeNil)

				So(s.SetSpeed(-1), ShouldHaveSameTypeAs, merrors.InvalidSpeedError{})
				So(s.SetSpeed(1000.5), ShouldHaveSameTypeAs, merrors.InvalidSpeedError{})
				So(s.Status().SpeedRPM, ShouldEqual, 250)
			})

			Convey("Shutdown disables control but keeps the position", func() {
				_, err := s.MoveSteps(75, true)
				So(err, ShouldBeNil)

				So(s.Shutdown(), ShouldBeNil)

				st := s.Status()
				So(st.Enabled, ShouldBeFalse)
				So(st.Initialized, ShouldBeFalse)
				So(st.Position, ShouldEqual, 75)
				So(s.Position(), ShouldEqual, 75)

				Convey("and motion stays refused until re-init", func() {
					_, err := s.MoveSteps(1, true)
					So(err, ShouldHaveSameTypeAs, merrors.NotInitializedError{})
				})

				Convey("while a repeat Initialize starts fresh", func() {
					So(s.Initialize(Params{}), ShouldBeNil)
					So(s.Position(), ShouldEqual, 0)
					So(s.Status().Enabled, ShouldBeTrue)
				})
			})
		})

		Convey("Initialize can override the pin assignment", func() {
			So(s.Initialize(Params{"step_pin": 5, "dir_pin": 6, "enable_pin": 13}), ShouldBeNil)
			step, dir, enable := s.Pins()
			So(step, ShouldEqual, 5)
			So(dir, ShouldEqual, 6)
			So(enable, ShouldEqual, 13)
		})
	})
}

func TestStepperFirmwareGate(t *testing.T) {
	Convey("the firmware gate", t, func() {
		Convey("accepts versions within the supported range", func() {
			So(checkFirmware("0.1.0", DRIVER_FIRMWARE), ShouldBeNil)
			So(checkFirmware("0.1.9", DRIVER_FIRMWARE), ShouldBeNil)
		})

		Convey("accepts DEV builds", func() {
			So(checkFirmware("DEV", DRIVER_FIRMWARE), ShouldBeNil)
		})

		Convey("rejects versions outside the range", func() {
			So(checkFirmware("0.2.0", DRIVER_FIRMWARE), ShouldHaveSameTypeAs, merrors.FirmwareVersionError{})
			So(checkFirmware("1.0.0", DRIVER_FIRMWARE), ShouldHaveSameTypeAs, merrors.FirmwareVersionError{})
		})

		Convey("rejects garbage version strings", func() {
			So(checkFirmware("not-a-version", DRIVER_FIRMWARE), ShouldHaveSameTypeAs, merrors.FirmwareVersionError{})
		})

		Convey("blocks Initialize when reported via params", func() {
			d, _ := NewExampleStepper(Params{})
			err := d.Initialize(Params{"firmware": "9.9.9"})
			So(err, ShouldHaveSameTypeAs, merrors.FirmwareVersionError{})
			So(d.Status().Initialized, ShouldBeFalse)
		})
	})
}
