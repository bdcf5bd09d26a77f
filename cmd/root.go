package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vwid-io/vwid/server"
	"github.com/vwid-io/vwid/util"
)

var (
	log     = util.NewLogger("main")
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "vwid",
	Short:   "Volkswagen ID to Home Assistant bridge",
	Version: server.FormattedVersion(),
	Run:     runRun,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile,
		"config", "c",
		"",
		"Config file (default \"~/vwid.yaml\" or \"/etc/vwid.yaml\")",
	)

	rootCmd.PersistentFlags().StringP(
		"log", "l",
		"error",
		"Log level (fatal, error, warn, info, debug, trace)",
	)
	bind(rootCmd, "log")

	rootCmd.Flags().StringP(
		"uri", "u",
		"0.0.0.0:7090",
		"Listen address",
	)
	bindLocal(rootCmd, "uri")

	rootCmd.Flags().DurationP(
		"interval", "i",
		45*time.Second,
		"Update interval",
	)
	bindLocal(rootCmd, "interval")

	rootCmd.Flags().Bool(
		"metrics",
		false,
		"Expose metrics",
	)
	bindLocal(rootCmd, "metrics")
}

func bind(cmd *cobra.Command, flag string) {
	if err := viper.BindPFlag(flag, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func bindLocal(cmd *cobra.Command, flag string) {
	if err := viper.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory if available
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}

		viper.AddConfigPath(".")    // optionally look for config in the working directory
		viper.AddConfigPath("/etc") // path to look for the config file in

		viper.SetConfigName("vwid")
	}

	viper.SetEnvPrefix("vwid")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		// using config file
		cfgFile = viper.ConfigFileUsed()
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		// parsing failed - exit
		fmt.Println(err)
		os.Exit(1)
	} else {
		// not using config file
		cfgFile = ""
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
