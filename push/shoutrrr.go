package push

import (
	"strings"

	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/router"
	"github.com/containrrr/shoutrrr/pkg/types"
	"github.com/vwid-io/vwid/util"
)

// Shoutrrr implements the shoutrrr messaging aggregator
type Shoutrrr struct {
	log *util.Logger
	app *router.ServiceRouter
}

// NewShoutrrr creates new Shoutrrr messenger for the given service urls
func NewShoutrrr(uri ...string) (*Shoutrrr, error) {
	app, err := shoutrrr.CreateSender(uri...)
	if err != nil {
		return nil, err
	}

	m := &Shoutrrr{
		log: util.NewLogger("shoutrrr"),
		app: app,
	}

	return m, nil
}

// Send sends to all receivers
func (m *Shoutrrr) Send(title, msg string) {
	params := &types.Params{}
	if title != "" {
		params.SetTitle(title)
	}

	m.log.DEBUG.Printf("sending: %s", msg)

	for _, err := range m.app.Send(strings.TrimSpace(msg), params) {
		if err != nil {
			m.log.ERROR.Printf("send: %v", err)
		}
	}
}
