package push

// Event names
const (
	ChargingStart = "start"
	ChargingStop  = "stop"
	CommandFailed = "error"
)

// Event is a push notification trigger
type Event struct {
	Vehicle string // VIN
	Event   string
	Message string // optional detail, e.g. error text
}

// Sender is the interface that all push messaging services implement
type Sender interface {
	Send(title, msg string)
}

// EventTemplate is the push message template for an event
type EventTemplate struct {
	Title, Msg string
	Disable    bool
}

// Config is the messaging configuration
type Config struct {
	Events   map[string]EventTemplate
	Services []string // shoutrrr urls
}
