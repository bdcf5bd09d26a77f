package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vwid-io/vwid/core"
	"github.com/vwid-io/vwid/util"
)

// Collector implements prometheus.Collector for the cached vehicle values
type Collector struct {
	cache *util.Cache

	value   *prometheus.Desc
	info    *prometheus.Desc
	updated *prometheus.Desc
}

// NewCollector creates a collector of all numeric and boolean vehicle values
func NewCollector(cache *util.Cache) *Collector {
	return &Collector{
		cache: cache,
		value: prometheus.NewDesc(
			"vwid_vehicle_value",
			"Numeric vehicle value by entity key (booleans as 1/0)",
			[]string{"vin", "key"},
			nil,
		),
		info: prometheus.NewDesc(
			"vwid_vehicle_info",
			"Vehicle information",
			[]string{"vin", "name", "model"},
			nil,
		),
		updated: prometheus.NewDesc(
			"vwid_last_update_timestamp_seconds",
			"Unix timestamp of the last successful refresh",
			nil,
			nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.value
	ch <- c.info
	ch <- c.updated
}

func numeric(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case float64:
		return val, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	names := make(map[string]string)
	models := make(map[string]string)

	for _, p := range c.cache.All() {
		if p.Vehicle == "" {
			if ts, ok := p.Val.(time.Time); ok && p.Key == core.KeyUpdated {
				ch <- prometheus.MustNewConstMetric(c.updated, prometheus.GaugeValue, float64(ts.Unix()))
			}
			continue
		}

		switch p.Key {
		case core.KeyName:
			names[p.Vehicle], _ = p.Val.(string)
			continue
		case core.KeyModel:
			models[p.Vehicle], _ = p.Val.(string)
			continue
		}

		if val, ok := numeric(p.Val); ok {
			ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, val, p.Vehicle, p.Key)
		}
	}

	for vin, name := range names {
		ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1, vin, name, models[vin])
	}
}
