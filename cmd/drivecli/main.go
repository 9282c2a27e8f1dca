// drivecli is a terminal client for the cloud drive backend.
//
// Commands:
//
//	drivecli register / login / logout / whoami
//	drivecli ls [--folder id | --shared | --shared-by-me]
//	drivecli mkdir / rename / rm / rm-tree / clear
//	drivecli upload / new-version / download / share / unshare / people
//	drivecli search <query>
//	drivecli notifications [watch | read <id>]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clouddrive/clouddrive-client/internal/config"
	"github.com/clouddrive/clouddrive-client/internal/logging"
)

var (
	serverFlag string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "drivecli",
		Short:         "Cloud Drive terminal client",
		Long:          "Browse, upload, share and manage files on a cloud drive server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if serverFlag != "" {
				cfg.ServerURL = serverFlag
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			return logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "server URL (overrides DRIVE_SERVER_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		lsCmd(),
		searchCmd(),
		mkdirCmd(),
		renameCmd(),
		rmCmd(),
		rmTreeCmd(),
		clearCmd(),
		uploadCmd(),
		newVersionCmd(),
		downloadCmd(),
		shareCmd(),
		unshareCmd(),
		peopleCmd(),
		notificationsCmd(),
	)

	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
