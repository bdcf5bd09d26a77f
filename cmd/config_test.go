package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vwid-io/vwid/api"
)

func TestDecodeConfig(t *testing.T) {
	conf, err := decodeConfig(map[string]interface{}{
		"interval": "1m",
		"models":   "ID.3,ID.4",
		"account": map[string]interface{}{
			"refreshtoken": "secret",
		},
		"mqtt": map[string]interface{}{
			"broker": "localhost:1883",
		},
		"levels": map[string]interface{}{
			"vw": "trace",
		},
	})
	require.NoError(t, err)

	require.Equal(t, time.Minute, conf.Interval)
	require.Equal(t, []string{"ID.3", "ID.4"}, conf.Models)
	require.Equal(t, "secret", conf.Account.RefreshToken)
	require.Equal(t, "localhost:1883", conf.Mqtt.Broker)
	require.Equal(t, "vwid", conf.Mqtt.RootTopic())
	require.Equal(t, "trace", conf.Levels["vw"])
	require.Equal(t, "0.0.0.0:7090", conf.URI)
}

func TestDecodeConfigDefaults(t *testing.T) {
	conf, err := decodeConfig(nil)
	require.NoError(t, err)
	require.Equal(t, 45*time.Second, conf.Interval)
	require.Equal(t, api.SupportedModels, conf.Models)
}

func TestDecodeConfigInvalid(t *testing.T) {
	_, err := decodeConfig(map[string]interface{}{"interval": "10s"})
	require.Error(t, err)

	_, err = decodeConfig(map[string]interface{}{"unknown": true})
	require.Error(t, err)
}
