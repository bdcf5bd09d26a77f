package push

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/vwid-io/vwid/util"
)

// DefaultEvents are used for events without configured template
var DefaultEvents = map[string]EventTemplate{
	ChargingStart: {Title: "Charging started", Msg: "{{.name}} started charging at {{.currentSOC_pct}}%"},
	ChargingStop:  {Title: "Charging finished", Msg: "{{.name}} stopped charging at {{.currentSOC_pct}}%"},
	CommandFailed: {Title: "Command failed", Msg: "{{.name}}: {{.message}}"},
}

// Vehicles provides the cached attributes of a vehicle
type Vehicles interface {
	Vehicle(vin string) map[string]interface{}
}

// Hub subscribes to event notifications and sends them to client devices
type Hub struct {
	log         *util.Logger
	definitions map[string]EventTemplate
	sender      []Sender
	cache       Vehicles
}

// NewHub creates push hub with definitions and receiver
func NewHub(cc map[string]EventTemplate, cache Vehicles) (*Hub, error) {
	definitions := make(map[string]EventTemplate, len(DefaultEvents))
	for k, v := range DefaultEvents {
		definitions[k] = v
	}

	// instantiate all event templates
	for k, v := range cc {
		if _, err := template.New("out").Funcs(sprig.TxtFuncMap()).Parse(v.Title); err != nil {
			return nil, fmt.Errorf("invalid event title: %s (%w)", k, err)
		}
		if _, err := template.New("out").Funcs(sprig.TxtFuncMap()).Parse(v.Msg); err != nil {
			return nil, fmt.Errorf("invalid event message: %s (%w)", k, err)
		}
		definitions[k] = v
	}

	h := &Hub{
		log:         util.NewLogger("push"),
		definitions: definitions,
		cache:       cache,
	}

	return h, nil
}

// Add adds a sending provider
func (h *Hub) Add(sender Sender) {
	h.sender = append(h.sender, sender)
}

// apply applies the event template to the vehicle attributes
func (h *Hub) apply(ev Event, tmpl string) (string, error) {
	attr := make(map[string]interface{})
	if h.cache != nil {
		attr = h.cache.Vehicle(ev.Vehicle)
	}

	if _, ok := attr["name"]; !ok {
		attr["name"] = ev.Vehicle
	}
	attr["vin"] = ev.Vehicle
	attr["message"] = ev.Message

	t, err := template.New("out").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return "", err
	}

	out := new(bytes.Buffer)
	err = t.Execute(out, attr)

	return strings.ReplaceAll(out.String(), "<no value>", "-"), err
}

// Format renders title and message of an event
func (h *Hub) Format(ev Event) (title, msg string, ok bool) {
	definition, ok := h.definitions[ev.Event]
	if !ok || definition.Disable {
		return "", "", false
	}

	var err error
	if title, err = h.apply(ev, definition.Title); err != nil {
		h.log.ERROR.Printf("invalid title template for %s: %v", ev.Event, err)
		return "", "", false
	}

	if msg, err = h.apply(ev, definition.Msg); err != nil {
		h.log.ERROR.Printf("invalid message template for %s: %v", ev.Event, err)
		return "", "", false
	}

	return title, msg, true
}

// Run is the Hub's main publishing loop
func (h *Hub) Run(events <-chan Event) {
	for ev := range events {
		if len(h.sender) == 0 {
			continue
		}

		title, msg, ok := h.Format(ev)
		if !ok {
			continue
		}

		for _, sender := range h.sender {
			go sender.Send(title, msg)
		}
	}
}
