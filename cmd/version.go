package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edunova/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("edunova", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			fmt.Println("Could not check for updates:", err)
			return
		}
		if res.UpdateAvailable {
			fmt.Printf("A new version is available: %s (%s)\nRun: edunova update\n", res.LatestVersion, res.ReleaseURL)
			return
		}
		fmt.Println("You are running the latest version.")
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Also check GitHub for a newer release")
}
