package server

import (
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxlog "github.com/influxdata/influxdb-client-go/v2/log"
	"github.com/vwid-io/vwid/util"
)

// InfluxConfig is the influx database configuration
type InfluxConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
	Token    string `mapstructure:"token"`
	Org      string `mapstructure:"org"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Influx is a influx publisher
type Influx struct {
	log      *util.Logger
	client   influxdb2.Client
	org      string
	database string
}

// NewInfluxClient creates new publisher for influx
func NewInfluxClient(url, token, org, user, password, database string) *Influx {
	log := util.NewLogger("influx")

	// InfluxDB v1 compatibility
	if token == "" && user != "" {
		token = fmt.Sprintf("%s:%s", user, password)
	}

	options := influxdb2.DefaultOptions().SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(url, token, options)

	// handle error logging in writer
	influxlog.Log = nil

	return &Influx{
		log:      log,
		client:   client,
		org:      org,
		database: database,
	}
}

// fields converts a parameter value into influx fields
func fields(v interface{}) (map[string]interface{}, bool) {
	switch val := v.(type) {
	case int, float64, bool, string:
		return map[string]interface{}{"value": val}, true
	default:
		return nil, false
	}
}

// Run Influx publisher
func (m *Influx) Run(in <-chan util.Param) {
	writer := m.client.WriteAPI(m.org, m.database)

	// log errors
	go func() {
		for err := range writer.Errors() {
			m.log.ERROR.Println(err)
		}
	}()

	for p := range in {
		if p.Vehicle == "" {
			continue
		}

		f, ok := fields(p.Val)
		if !ok {
			continue
		}

		point := influxdb2.NewPoint(p.Key, map[string]string{"vin": p.Vehicle}, f, time.Now())
		m.log.TRACE.Printf("write %s=%v (%s)", p.Key, p.Val, p.Vehicle)

		writer.WritePoint(point)
	}

	m.client.Close()
}
