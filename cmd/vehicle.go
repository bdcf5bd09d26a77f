package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core"
	"github.com/vwid-io/vwid/provider"
	"github.com/vwid-io/vwid/util"
)

// vehicleCmd represents the vehicle command
var vehicleCmd = &cobra.Command{
	Use:   "vehicle [vin]",
	Short: "Query vehicles",
	Args:  cobra.MaximumNArgs(1),
	Run:   runVehicle,
}

var vehicleChargeCmd = &cobra.Command{
	Use:       "charge [start|stop]",
	Short:     "Start or stop charging",
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{string(api.OperationStart), string(api.OperationStop)},
	Run: vehicleCommand(func(c api.Commander, vin string, args []string) error {
		return c.StartStopCharging(vin, api.Operation(args[0]))
	}),
}

var vehicleClimateCmd = &cobra.Command{
	Use:       "climate [start|stop]",
	Short:     "Start or stop climatisation",
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{string(api.OperationStart), string(api.OperationStop)},
	Run: vehicleCommand(func(c api.Commander, vin string, args []string) error {
		return c.StartStopClimatisation(vin, api.Operation(args[0]))
	}),
}

var vehicleSocCmd = &cobra.Command{
	Use:   "soc [percent]",
	Short: "Set target state of charge",
	Args:  cobra.ExactArgs(1),
	Run: vehicleCommand(func(c api.Commander, vin string, args []string) error {
		soc, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return c.SetTargetSoC(vin, soc)
	}),
}

var vehicleTempCmd = &cobra.Command{
	Use:   "temp [celsius]",
	Short: "Set climatisation target temperature",
	Args:  cobra.ExactArgs(1),
	Run: vehicleCommand(func(c api.Commander, vin string, args []string) error {
		temp, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		return c.SetClimatisationTemperature(vin, temp)
	}),
}

var vehicleSpeedCmd = &cobra.Command{
	Use:       "speed [maximum|reduced|toggle]",
	Short:     "Set maximum AC charge current",
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{string(api.ChargeSpeedMaximum), string(api.ChargeSpeedReduced), "toggle"},
	Run: vehicleCommand(func(c api.Commander, vin string, args []string) error {
		if args[0] == "toggle" {
			return c.ToggleACChargeSpeed(vin)
		}
		return c.SetACChargeSpeed(vin, api.ChargeSpeed(args[0]))
	}),
}

func init() {
	rootCmd.AddCommand(vehicleCmd)

	vehicleCmd.PersistentFlags().String("vin", "", "Vehicle identification number, required for multiple vehicles")
	vehicleCmd.PersistentFlags().Bool("all", false, "Include models not supported by default")

	for _, c := range []*cobra.Command{vehicleChargeCmd, vehicleClimateCmd, vehicleSocCmd, vehicleTempCmd, vehicleSpeedCmd} {
		vehicleCmd.AddCommand(c)
	}
}

// vehicleCoordinator creates a coordinator and loads the garage once
func vehicleCoordinator(cmd *cobra.Command) (*core.Coordinator, error) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := configureDatabase(conf.Database); err != nil {
		return nil, err
	}

	conn, err := configureConnector(conf.Account)
	if err != nil {
		return nil, err
	}

	models := conf.Models
	if all, _ := cmd.Flags().GetBool("all"); all {
		models = nil
	}

	coord := core.NewCoordinator(conn, models, provider.NewThrottle(provider.ThrottleWindow))
	coord.Attempts = 1

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return coord, coord.FirstRefresh(ctx)
}

func runVehicle(cmd *cobra.Command, args []string) {
	coord, err := vehicleCoordinator(cmd)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	vehicles := coord.Vehicles()
	if len(args) == 1 {
		v, err := coord.Vehicle(args[0])
		if err != nil {
			log.FATAL.Fatal(err)
		}
		vehicles = []*api.Vehicle{v}
	}

	if len(vehicles) == 0 {
		fmt.Println("no vehicles found")
		return
	}

	d := dumper{out: os.Stdout}
	for _, v := range vehicles {
		d.Dump(v)
	}
}

// vehicleCommand wraps a command function into a cobra run function
func vehicleCommand(fun func(c api.Commander, vin string, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		coord, err := vehicleCoordinator(cmd)
		if err != nil {
			log.FATAL.Fatal(err)
		}

		flag, _ := cmd.Flags().GetString("vin")

		v, err := coord.Vehicle(flag)
		if err != nil {
			log.FATAL.Fatal(err)
		}

		if err := fun(core.NewCommands(coord), v.VIN, args); err != nil {
			log.FATAL.Fatal(err)
		}

		fmt.Printf("%s: ok\n", v.VIN)
	}
}
