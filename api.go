package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/CodedInternet/smartstepper/motor"
	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

// API serves the motor control surface. It is a thin layer: all lifecycle
// and validation authority lives in the controller.
type API struct {
	ctrl   *motor.Controller
	config motor.Config
}

func NewAPI(ctrl *motor.Controller, config motor.Config) *API {
	return &API{
		ctrl:   ctrl,
		config: config,
	}
}

// Routes mounts the control endpoints on an /api subrouter.
func (a *API) Routes(r chi.Router) {
	r.Get("/layout", a.GetLayout)
	r.Post("/init", a.InitMotor)
	r.Post("/control", a.ControlMotor)
	r.Get("/status", a.GetStatus)
	r.Get("/drivers", a.ListDrivers)
}

// AllowAll opens the API to any origin. The original interface is loaded
// by the WebTester frontend from arbitrary hosts.
func AllowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

//---
// Payloads
//---

type InitPayload struct {
	StepPin    *int `json:"step_pin"`
	DirPin     *int `json:"dir_pin"`
	EnablePin  *int `json:"enable_pin"`
	Microsteps *int `json:"microsteps"`
}

func (p *InitPayload) Bind(r *http.Request) error {
	return nil
}

type ControlPayload struct {
	Direction string   `json:"direction"`
	Speed     *float64 `json:"speed"`
	Steps     *int64   `json:"steps"`
}

func (p *ControlPayload) Bind(r *http.Request) error {
	return nil
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ControlResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Position int64  `json:"position"`
}

type StatusResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Position    int64   `json:"position"`
	Speed       float64 `json:"speed"`
	Initialized bool    `json:"initialized"`
}

type DriversResponse struct {
	Status  string   `json:"status"`
	Drivers []string `json:"drivers"`
}

//---
// Views
//---

// InitMotor creates the configured motor on first use and (re)initializes
// it. Request values override the configured default pins.
func (a *API) InitMotor(w http.ResponseWriter, r *http.Request) {
	data := &InitPayload{}
	if err := render.Bind(r, data); err != nil && !errors.Is(err, io.EOF) {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	pins := a.config.Motor.DefaultPins
	settings := a.config.Motor.DefaultSettings
	params := motor.Params{
		"step_pin":   valueOr(data.StepPin, pins.Step),
		"dir_pin":    valueOr(data.DirPin, pins.Dir),
		"enable_pin": valueOr(data.EnablePin, pins.Enable),
		"microsteps": valueOr(data.Microsteps, settings.Microsteps),
	}

	name := a.config.Motor.Name
	if _, err := a.ctrl.Motor(name); err != nil {
		if _, err = a.ctrl.CreateMotor(name, a.config.Motor.Type, a.config.Motor.Driver, params); err != nil {
			render.Render(w, r, ErrMotor(err))
			return
		}
	}

	if err := a.ctrl.InitializeMotor(name, params); err != nil {
		render.Render(w, r, ErrMotor(err))
		return
	}

	render.JSON(w, r, MessageResponse{
		Status: "success",
		Message: fmt.Sprintf("Motor initialized successfully with pins: step=%v, dir=%v, enable=%v",
			params["step_pin"], params["dir_pin"], params["enable_pin"]),
	})
}

// ControlMotor sets the speed and moves the motor. Direction comes from
// the direction field; the step count itself is always positive.
func (a *API) ControlMotor(w http.ResponseWriter, r *http.Request) {
	data := &ControlPayload{}
	if err := render.Bind(r, data); err != nil && !errors.Is(err, io.EOF) {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	settings := a.config.Motor.DefaultSettings
	direction := data.Direction
	if direction == "" {
		direction = "forward"
	}
	speed := settings.DefaultSpeed
	if data.Speed != nil {
		speed = *data.Speed
	}
	steps := settings.DefaultSteps
	if data.Steps != nil {
		steps = *data.Steps
	}

	name := a.config.Motor.Name
	forward := strings.ToLower(direction) == "forward"

	if err := a.ctrl.SetMotorSpeed(name, speed); err != nil {
		render.Render(w, r, errNotReady(err))
		return
	}

	position, err := a.ctrl.CommandMotion(name, steps, forward)
	if err != nil {
		render.Render(w, r, errNotReady(err))
		return
	}

	render.JSON(w, r, ControlResponse{
		Status:   "success",
		Message:  fmt.Sprintf("Motor moved %d steps %s at %s RPM", steps, direction, trimFloat(speed)),
		Position: position,
	})
}

// GetStatus reports the current snapshot. A motor that was never created
// reports not_initialized rather than an error.
func (a *API) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := a.ctrl.MotorStatus(a.config.Motor.Name)
	if err != nil {
		var notFound merrors.MotorNotFoundError
		if errors.As(err, &notFound) {
			render.JSON(w, r, MessageResponse{
				Status:  "not_initialized",
				Message: "Motor not initialized",
			})
			return
		}
		render.Render(w, r, ErrMotor(err))
		return
	}

	status, message := "initialized", "Motor is ready"
	if !snap.Initialized {
		status, message = "not_initialized", "Motor not initialized"
	}

	render.JSON(w, r, StatusResponse{
		Status:      status,
		Message:     message,
		Position:    snap.Position,
		Speed:       snap.SpeedRPM,
		Initialized: snap.Initialized,
	})
}

// ListDrivers reports the registry contents, built ins first.
func (a *API) ListDrivers(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, DriversResponse{
		Status:  "success",
		Drivers: a.ctrl.Drivers(),
	})
}

// errNotReady keeps the original interface wording for the common "move
// before init" mistake; everything else maps through ErrMotor.
func errNotReady(err error) render.Renderer {
	var (
		notFound merrors.MotorNotFoundError
		notInit  merrors.NotInitializedError
	)
	if errors.As(err, &notFound) || errors.As(err, &notInit) {
		e := newErrResponse(err, http.StatusBadRequest)
		e.Message = "Motor not initialized. Please initialize first."
		return e
	}
	return ErrMotor(err)
}

func valueOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

// trimFloat formats a speed without a trailing .0 so messages read
// "60 RPM" rather than "60.000000 RPM".
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
