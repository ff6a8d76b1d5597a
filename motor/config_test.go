package motor

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "smartstepper")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.yaml")
	if err := ioutil.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	Convey("LoadConfig", t, func() {
		Convey("falls back to the stock config for a missing file", func() {
			config, err := LoadConfig("/nonexistent/config.yaml")
			So(err, ShouldBeNil)
			So(config, ShouldResemble, DefaultConfig())
			So(config.Server.Addr(), ShouldEqual, "0.0.0.0:8080")
			So(config.Motor.Name, ShouldEqual, "smart_stepper")
		})

		Convey("overlays file values onto the defaults", func() {
			path := writeTempConfig(t, `
server:
  port: 9090
motor:
  name: bench_stepper
`)
			config, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(config.Server.Host, ShouldEqual, "0.0.0.0")
			So(config.Server.Port, ShouldEqual, 9090)
			So(config.Motor.Name, ShouldEqual, "bench_stepper")
			So(config.Motor.Driver, ShouldEqual, ExampleStepperDriver)
			So(config.Motor.DefaultSettings.DefaultSteps, ShouldEqual, 200)
		})

		Convey("accepts pins as a flow list", func() {
			path := writeTempConfig(t, `
motor:
  default_pins: [5, 6, 13]
`)
			config, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(config.Motor.DefaultPins, ShouldResemble, PinConfig{Step: 5, Dir: 6, Enable: 13})
		})

		Convey("accepts pins as a mapping", func() {
			path := writeTempConfig(t, `
motor:
  default_pins:
    step: 5
    dir: 6
    enable: 13
`)
			config, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(config.Motor.DefaultPins, ShouldResemble, PinConfig{Step: 5, Dir: 6, Enable: 13})
		})

		Convey("rejects a pin list of the wrong length", func() {
			path := writeTempConfig(t, `
motor:
  default_pins: [5, 6]
`)
			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
		})

		Convey("rejects an unrecognized motor type", func() {
			path := writeTempConfig(t, `
motor:
  type: linear
`)
			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
		})

		Convey("rejects malformed yaml", func() {
			path := writeTempConfig(t, "motor: [unterminated")
			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
		})
	})
}
