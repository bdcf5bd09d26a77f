package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vwid-io/vwid/core/storage"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/vehicle/vw"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token [refresh token]",
	Short: "Validate and store the account refresh token",
	Args:  cobra.ExactArgs(1),
	Run:   runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	if err := configureDatabase(conf.Database); err != nil {
		log.FATAL.Fatal(err)
	}

	vwlog := util.NewLogger("vw")

	refresh := args[0]
	identity, err := vw.NewIdentity(vwlog, refresh, func(token string) {
		refresh = token
	})
	if err != nil {
		log.FATAL.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn := vw.NewProvider(vwlog, vw.NewAPI(vwlog, identity))
	if err := conn.FetchAll(ctx); err != nil {
		log.FATAL.Fatalf("token validation failed: %v", err)
	}

	if err := storage.SetSetting(settingRefreshToken, refresh); err != nil {
		log.FATAL.Fatal(err)
	}

	fmt.Printf("token stored, %d vehicle(s) found\n", len(conn.Vehicles()))
}
