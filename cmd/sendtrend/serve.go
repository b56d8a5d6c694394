package sendtrend

import (
	"fmt"
	"log/slog"

	"github.com/alb0rt/send-trend/db"
	"github.com/alb0rt/send-trend/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:              "serve",
	Short:            "Run the SendTrend web interface",
	Long:             `Serve the dashboard and session tracking pages from a sqlite log file.`,
	PersistentPreRun: bindFlags,
	RunE: func(_ *cobra.Command, _ []string) error {
		slog.Info("Starting up", "config", viper.ConfigFileUsed(), "storage", storagePath)

		storage, err := db.ConnectDB(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		return web.StartServer(port, storage, dev)
	},
}

var (
	storagePath string
	port        int
	dev         bool
	filenames   []string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&port, "port", "p", 9000,
		"Port on which server should be watching")

	serveCmd.Flags().StringVarP(
		&storagePath,
		"storage",
		"s",
		"./sessions.sqlite",
		"Path to the session log")

	serveCmd.Flags().BoolVar(&dev,
		"dev",
		false,
		"Enable developer mode")
}
