package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/storage"
	"github.com/vwid-io/vwid/push"
	"github.com/vwid-io/vwid/server"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/mqtt"
	"github.com/vwid-io/vwid/vehicle/vw"
	"gorm.io/gorm"
)

// settingRefreshToken is the database key of the rotated refresh token
const settingRefreshToken = "vw.refreshToken"

func expandHome(file string) string {
	if strings.HasPrefix(file, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, file[2:])
		}
	}
	return file
}

func configureDatabase(file string) error {
	if file == "" {
		return nil
	}

	file = expandHome(file)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	log.INFO.Println("using database", file)

	return storage.Open(file)
}

// refreshToken returns the persisted refresh token, falling back to the configured one
func refreshToken(conf accountConfig) string {
	token, err := storage.GetSetting(settingRefreshToken)
	if err == nil && token != "" {
		return token
	}

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, storage.ErrNotOpen) {
		log.WARN.Printf("reading refresh token: %v", err)
	}

	return conf.RefreshToken
}

func persistToken(token string) {
	if err := storage.SetSetting(settingRefreshToken, token); err != nil && !errors.Is(err, storage.ErrNotOpen) {
		log.ERROR.Printf("persisting refresh token: %v", err)
	}
}

// configureConnector creates the vendor client from the account configuration
func configureConnector(conf accountConfig) (api.Connector, error) {
	log := util.NewLogger("vw")

	identity, err := vw.NewIdentity(log, refreshToken(conf), persistToken)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}

	return vw.NewProvider(log, vw.NewAPI(log, identity)), nil
}

// configureMessengers creates the push hub and returns its event channel
func configureMessengers(conf push.Config, cache *util.Cache) (chan push.Event, error) {
	events := make(chan push.Event, 10)

	hub, err := push.NewHub(conf.Events, cache)
	if err != nil {
		return events, fmt.Errorf("failed configuring push services: %w", err)
	}

	if len(conf.Services) > 0 {
		sender, err := push.NewShoutrrr(conf.Services...)
		if err != nil {
			return events, fmt.Errorf("failed configuring push services: %w", err)
		}

		hub.Add(sender)
	}

	go hub.Run(events)

	return events, nil
}

// configureMQTT connects to the broker and starts the discovery bridge
func configureMQTT(conf mqtt.Config, coord server.Coordinator, cmd api.Commander, in <-chan util.Param) (*mqtt.Client, error) {
	log := util.NewLogger("mqtt")

	clientID := conf.ClientID
	if clientID == "" {
		clientID = mqtt.ClientID()
	}

	topics := server.Topics{Root: conf.RootTopic()}
	will := &mqtt.Will{Topic: topics.Status(), Payload: server.PayloadOffline}

	client, err := mqtt.NewClient(log, conf.Broker, conf.User, conf.Password, clientID, 1, conf.Insecure, will)
	if err != nil {
		return nil, fmt.Errorf("failed configuring mqtt: %w", err)
	}

	bridge := server.NewMQTT(client, topics.Root, coord, cmd)
	if err := bridge.Listen(); err != nil {
		return nil, fmt.Errorf("failed configuring mqtt: %w", err)
	}

	client.OnConnect(bridge.Announce)
	go bridge.Run(in)

	return client, nil
}

// configureInflux starts the influx writer
func configureInflux(conf server.InfluxConfig, in <-chan util.Param) {
	influx := server.NewInfluxClient(
		conf.URL,
		conf.Token,
		conf.Org,
		conf.User,
		conf.Password,
		conf.Database,
	)

	go influx.Run(in)
}
