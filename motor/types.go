package motor

// MotorType identifies the category of motor a driver must be able to
// control. It is a closed set; anything else is rejected at the
// controller boundary.
type MotorType string

const (
	Servo   MotorType = "servo"
	Stepper MotorType = "stepper"
	BLDC    MotorType = "bldc"
)

// Valid reports whether t is one of the three supported types.
func (t MotorType) Valid() bool {
	switch t {
	case Servo, Stepper, BLDC:
		return true
	}
	return false
}

func (t MotorType) String() string {
	return string(t)
}

// MotorTypes returns the supported types in their canonical order.
func MotorTypes() []MotorType {
	return []MotorType{Servo, Stepper, BLDC}
}
