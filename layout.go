package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

//---
// Web form layout document
//---

// Layout describes the control form rendered by the WebTester frontend.
// It is static per process: built once from config, never mutated by
// motor state.
type Layout struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	SubmitURL      string          `json:"submitUrl"`
	Elements       []LayoutElement `json:"elements"`
	OutputMappings []OutputMapping `json:"outputMappings"`
}

type LayoutElement struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	InputType    string         `json:"inputType,omitempty"`
	Label        string         `json:"label"`
	Placeholder  string         `json:"placeholder,omitempty"`
	Options      []LayoutOption `json:"options,omitempty"`
	Min          *float64       `json:"min,omitempty"`
	Max          *float64       `json:"max,omitempty"`
	DefaultValue string         `json:"defaultValue,omitempty"`
	Required     bool           `json:"required,omitempty"`
	Action       string         `json:"action,omitempty"`
	Style        string         `json:"style,omitempty"`
}

type LayoutOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type OutputMapping struct {
	ElementID   string `json:"elementId"`
	ResponseKey string `json:"responseKey"`
}

// GetLayout returns the form description document.
func (a *API) GetLayout(w http.ResponseWriter, r *http.Request) {
	web := a.config.WebInterface
	settings := a.config.Motor.DefaultSettings

	layout := Layout{
		Title:       web.Title,
		Description: web.Description,
		SubmitURL:   "/api/control",
		Elements: []LayoutElement{
			{
				ID:    "direction",
				Type:  "select",
				Label: "Direction",
				Options: []LayoutOption{
					{Value: "forward", Label: "Forward"},
					{Value: "backward", Label: "Backward"},
				},
				DefaultValue: "forward",
				Required:     true,
			},
			{
				ID:           "speed",
				Type:         "input",
				InputType:    "number",
				Label:        "Speed (RPM)",
				Placeholder:  "Enter speed in RPM",
				Min:          f64(web.SpeedRange.Min),
				Max:          f64(web.SpeedRange.Max),
				DefaultValue: strconv.FormatFloat(settings.DefaultSpeed, 'f', -1, 64),
				Required:     true,
			},
			{
				ID:           "steps",
				Type:         "input",
				InputType:    "number",
				Label:        "Steps",
				Placeholder:  "Number of steps to move",
				Min:          f64(web.StepsRange.Min),
				Max:          f64(web.StepsRange.Max),
				DefaultValue: strconv.FormatInt(settings.DefaultSteps, 10),
				Required:     true,
			},
			{
				ID:     "submit",
				Type:   "button",
				Label:  "Move Motor",
				Action: "submit",
				Style:  "primary",
			},
			{
				ID:     "stop",
				Type:   "button",
				Label:  "Stop Motor",
				Action: "custom",
				Style:  "danger",
			},
		},
		OutputMappings: []OutputMapping{
			{ElementID: "status", ResponseKey: "status"},
			{ElementID: "message", ResponseKey: "message"},
		},
	}

	render.JSON(w, r, layout)
}

func f64(v float64) *float64 {
	return &v
}
