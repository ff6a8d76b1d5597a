package main

import (
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/CodedInternet/smartstepper/motor"
)

// newShell builds the local development shell. It drives the controller
// through the same operation set the web layer uses.
func newShell(ctrl *motor.Controller, config motor.Config) *ishell.Shell {
	motorNames := func([]string) []string {
		return ctrl.Motors()
	}

	shell := ishell.New()
	shell.Println("SmartStepper development shell")
	shell.ShowPrompt(true)

	shell.AddCmd(&ishell.Cmd{
		Name: "createsuperuser",
		Help: "createsuperuser <email> <password>",
		Func: func(c *ishell.Context) {
			// disable the '>>>' for cleaner same line input.
			c.ShowPrompt(false)
			defer c.ShowPrompt(true) // yes, revert when done.

			// get email
			var email string
			if len(c.Args) >= 1 {
				email = c.Args[0]
			} else {
				c.Print("Email: ")
				email = c.ReadLine()
			}

			// get password
			var password string
			if len(c.Args) >= 2 {
				password = c.Args[1]
			} else {
				c.Print("Password: ")
				password = c.ReadPassword()
			}

			// create user
			user := &User{
				Email: email,
				Name:  email,
				Admin: true,
			}
			user.SetPassword([]byte(password))
			if err := ENV.DB.Save(user); err != nil {
				c.Err(err)
				return
			}

			c.Println("Superuser created")
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "drivers",
		Help: "list registered driver names",
		Func: func(c *ishell.Context) {
			for _, name := range ctrl.Drivers() {
				c.Println(name)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "motors",
		Help: "list live motor instances",
		Func: func(c *ishell.Context) {
			for _, name := range ctrl.Motors() {
				c.Println(name)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "create",
		Help: "create <name> <type> <driver>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 3 {
				c.Println("usage: create <name> <type> <driver>")
				return
			}
			name, typ, driver := c.Args[0], motor.MotorType(c.Args[1]), c.Args[2]
			if _, err := ctrl.CreateMotor(name, typ, driver, nil); err != nil {
				c.Err(err)
				return
			}
			c.Printf("Created %s motor %s using %s\n", typ, name, driver)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "init",
		Completer: motorNames,
		Help:      "init <name>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: init <name>")
				return
			}
			name := c.Args[0]
			pins := config.Motor.DefaultPins
			params := motor.Params{
				"step_pin":   pins.Step,
				"dir_pin":    pins.Dir,
				"enable_pin": pins.Enable,
				"microsteps": config.Motor.DefaultSettings.Microsteps,
			}
			if err := ctrl.InitializeMotor(name, params); err != nil {
				c.Err(err)
				return
			}
			c.Printf("Initialized motor %s\n", name)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "move",
		Completer: motorNames,
		Help:      "move <name> <steps> [backward]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Println("usage: move <name> <steps> [backward]")
				return
			}
			name := c.Args[0]
			steps, _ := strconv.ParseInt(c.Args[1], 10, 64)
			forward := len(c.Args) < 3 || c.Args[2] != "backward"
			c.Printf("Moving motor %s by %d steps\n", name, steps)
			position, err := ctrl.CommandMotion(name, steps, forward)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("Position: %d\n", position)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "speed",
		Completer: motorNames,
		Help:      "speed <name> <rpm>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Println("usage: speed <name> <rpm>")
				return
			}
			name := c.Args[0]
			rpm, _ := strconv.ParseFloat(c.Args[1], 64)
			if err := ctrl.SetMotorSpeed(name, rpm); err != nil {
				c.Err(err)
				return
			}
			c.Printf("Motor %s speed set to %s RPM\n", name, c.Args[1])
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "status",
		Completer: motorNames,
		Help:      "status <name>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: status <name>")
				return
			}
			snap, err := ctrl.MotorStatus(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("%s (%s) position=%d speed=%g enabled=%t initialized=%t\n",
				snap.Name, snap.Type, snap.Position, snap.SpeedRPM, snap.Enabled, snap.Initialized)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "remove",
		Completer: motorNames,
		Help:      "remove <name>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: remove <name>")
				return
			}
			name := c.Args[0]
			if err := ctrl.RemoveMotor(name); err != nil {
				// removal is best effort; a shutdown error still removes
				c.Err(err)
				return
			}
			c.Printf("Removed motor %s\n", name)
		},
	})

	return shell
}
