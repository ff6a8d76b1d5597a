package motor

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the file configuration for a smartstepper process. The core
// never interprets server values; they pass straight to the transport.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Motor        MotorConfig        `yaml:"motor"`
	WebInterface WebInterfaceConfig `yaml:"web_interface"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type MotorConfig struct {
	Name            string         `yaml:"name"`
	Type            MotorType      `yaml:"type"`
	Driver          string         `yaml:"driver"`
	DefaultPins     PinConfig      `yaml:"default_pins"`
	DefaultSettings SettingsConfig `yaml:"default_settings"`
}

// PinConfig is the step/direction/enable pin assignment. The values are
// configuration data only; the core treats them as opaque.
type PinConfig struct {
	Step   int `yaml:"step"`
	Dir    int `yaml:"dir"`
	Enable int `yaml:"enable"`
}

type yamlPins struct {
	Step   int `yaml:"step"`
	Dir    int `yaml:"dir"`
	Enable int `yaml:"enable"`
}

// UnmarshalYAML accepts either the mapping form or a [step, dir, enable]
// flow list.
func (p *PinConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []int
	if err := unmarshal(&list); err == nil {
		if len(list) != 3 {
			return fmt.Errorf("pin list must have exactly 3 entries, got %d", len(list))
		}
		p.Step, p.Dir, p.Enable = list[0], list[1], list[2]
		return nil
	}

	var yp yamlPins
	if err := unmarshal(&yp); err != nil {
		return err
	}
	p.Step, p.Dir, p.Enable = yp.Step, yp.Dir, yp.Enable
	return nil
}

type SettingsConfig struct {
	Microsteps   int     `yaml:"microsteps"`
	DefaultSpeed float64 `yaml:"default_speed"`
	DefaultSteps int64   `yaml:"default_steps"`
}

type WebInterfaceConfig struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	SpeedRange  RangeConfig `yaml:"speed_range"`
	StepsRange  RangeConfig `yaml:"steps_range"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DefaultConfig returns the stock configuration used when no file is
// present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Motor: MotorConfig{
			Name:   "smart_stepper",
			Type:   Stepper,
			Driver: ExampleStepperDriver,
			DefaultPins: PinConfig{
				Step:   DEFAULT_STEP_PIN,
				Dir:    DEFAULT_DIR_PIN,
				Enable: DEFAULT_ENABLE_PIN,
			},
			DefaultSettings: SettingsConfig{
				Microsteps:   DEFAULT_MICROSTEPS,
				DefaultSpeed: DEFAULT_SPEED_RPM,
				DefaultSteps: 200,
			},
		},
		WebInterface: WebInterfaceConfig{
			Title:       "SmartStepper Control",
			Description: "Control your stepper motor with direction and speed settings",
			SpeedRange:  RangeConfig{Min: MIN_SPEED_RPM, Max: MAX_SPEED_RPM},
			StepsRange:  RangeConfig{Min: 1, Max: 10000},
		},
	}
}

// LoadConfig reads a YAML config file, falling back to DefaultConfig when
// the file does not exist. File values overlay the defaults so partial
// configs stay usable.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("unable to read config file: %v", err)
	}

	if err = yaml.Unmarshal(raw, &config); err != nil {
		return config, fmt.Errorf("unable to unmarshal config: %v", err)
	}

	if !config.Motor.Type.Valid() {
		return config, fmt.Errorf("config motor type %q is not valid", config.Motor.Type)
	}
	return config, nil
}
