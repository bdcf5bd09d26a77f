package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vwid-io/vwid/core"
	"github.com/vwid-io/vwid/provider"
	"github.com/vwid-io/vwid/server"
	"github.com/vwid-io/vwid/server/public"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/mqtt"
	"github.com/vwid-io/vwid/util/pipe"
)

// mqttDedupe is the maximum period unchanged values are withheld from the broker
const mqttDedupe = time.Hour

// runCmd represents the base command when called without any subcommands
var runCmd = &cobra.Command{
	Use:    "run",
	Short:  "Run the bridge (default)",
	Hidden: true,
	Run:    runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().AddFlagSet(rootCmd.Flags())
}

// reload re-reads the account configuration and swaps the connector
func reload(coord *core.Coordinator) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.ERROR.Printf("reload: %v", err)
			return
		}
	}

	conf, err := decodeConfig(viper.AllSettings())
	if err != nil {
		log.ERROR.Printf("reload: %v", err)
		return
	}

	util.LogLevel(conf.Log, conf.Levels)

	conn, err := configureConnector(conf.Account)
	if err != nil {
		log.ERROR.Printf("reload: %v", err)
		return
	}

	coord.Reconfigure(conn)
}

func runRun(cmd *cobra.Command, args []string) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))
	log.INFO.Printf("vwid %s", server.FormattedVersion())

	// load config and re-configure logging after reading config file
	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	util.LogLevel(conf.Log, conf.Levels)

	// setup persistence before the account to restore rotated tokens
	if err := configureDatabase(conf.Database); err != nil {
		log.FATAL.Fatal(err)
	}

	conn, err := configureConnector(conf.Account)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	coord := core.NewCoordinator(conn, conf.Models, provider.NewThrottle(provider.ThrottleWindow))
	coord.SetStaleness(3 * conf.Interval)
	commands := core.NewCommands(coord)

	// start broadcasting values
	tee := &util.Tee{}

	// value cache
	cache := util.NewCache()
	go cache.Run(tee.Attach())

	// setup influx
	if conf.Influx.URL != "" {
		configureInflux(conf.Influx, pipe.NewDropper(core.KeyVehicles, core.KeyUpdated).Pipe(tee.Attach()))
	}

	// setup mqtt publisher
	var client *mqtt.Client
	if conf.Mqtt.Broker != "" {
		client, err = configureMQTT(conf.Mqtt, coord, commands, pipe.NewDeduplicator(mqttDedupe).Pipe(tee.Attach()))
		if err != nil {
			log.FATAL.Fatal(err)
		}
	}

	// create webserver
	uri := conf.URI
	if _, err := public.SetListener(uri); err != nil {
		log.WARN.Printf("public address: %v", err)
	}
	log.INFO.Println("listening at", uri)

	socketHub := server.NewSocketHub()
	httpd := server.NewHTTPd(uri, coord, commands, socketHub, cache)

	// metrics
	if conf.Metrics {
		prometheus.MustRegister(server.NewCollector(cache))
		httpd.Router().Handle("/metrics", promhttp.Handler())
	}

	// publish to UI
	go socketHub.Run(tee.Attach(), cache)

	// setup values channel
	valueChan := make(chan util.Param)
	go tee.Run(valueChan)

	// setup messaging
	pushChan, err := configureMessengers(conf.Messaging, cache)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	// set channels
	coord.Prepare(valueChan, pushChan)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := coord.FirstRefresh(ctx); err != nil {
			log.ERROR.Printf("first refresh: %v", err)
		}

		coord.Run(ctx, conf.Interval)
	}()

	// catch signals
	go func() {
		signalC := make(chan os.Signal, 1)
		signal.Notify(signalC, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

		for sig := range signalC {
			if sig == syscall.SIGHUP {
				log.INFO.Println("reloading configuration")
				reload(coord)
				continue
			}

			cancel()

			if client != nil {
				_ = client.Publish(server.Topics{Root: conf.Mqtt.RootTopic()}.Status(), true, server.PayloadOffline)
				client.Disconnect(time.Second)
			}

			os.Exit(0)
		}
	}()

	log.FATAL.Println(httpd.ListenAndServe())
}
