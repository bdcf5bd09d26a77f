package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/provider"
	"github.com/vwid-io/vwid/push"
	"github.com/vwid-io/vwid/server"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/mqtt"
)

type config struct {
	URI       string
	Log       string
	Levels    map[string]string
	Interval  time.Duration
	Metrics   bool
	Database  string
	Models    []string
	Account   accountConfig
	Mqtt      mqtt.Config
	Influx    server.InfluxConfig
	Messaging push.Config
}

type accountConfig struct {
	RefreshToken string `mapstructure:"refreshToken"`
}

func defaultConfig() config {
	return config{
		URI:      "0.0.0.0:7090",
		Log:      "error",
		Interval: 45 * time.Second,
		Database: "~/.vwid/vwid.db",
	}
}

// decodeConfig decodes settings onto the defaults and validates the result
func decodeConfig(settings map[string]interface{}) (config, error) {
	conf := defaultConfig()

	if err := util.DecodeOther(settings, &conf); err != nil {
		return conf, fmt.Errorf("failed decoding config: %w", err)
	}

	// slices are merged by the decoder, apply model default afterwards
	if len(conf.Models) == 0 {
		conf.Models = append([]string(nil), api.SupportedModels...)
	}

	if conf.Interval < provider.MinInterval {
		return conf, fmt.Errorf("interval must be at least %v", provider.MinInterval)
	}

	return conf, nil
}

func loadConfigFile(cfgFile string) (config, error) {
	if cfgFile != "" {
		log.INFO.Println("using config file", cfgFile)
	} else {
		log.INFO.Println("missing config file - using defaults and environment")
	}

	return decodeConfig(viper.AllSettings())
}
