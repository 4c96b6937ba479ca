package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edunova/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateStages = []string{"check", "download", "verify", "extract", "apply", "done"}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update edunova to the latest version",
	Long: `Download a release from GitHub, verify it against the release
checksums and replace the running binary. Use --version to install a
specific release, including an older one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("version")

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: target},
			func(p selfupdate.UpdateProgress) { fmt.Println(stageLine(p)) })
		return explainUpdateError(err)
	},
}

// stageLine prefixes a progress message with its step number.
func stageLine(p selfupdate.UpdateProgress) string {
	for i, s := range updateStages {
		if s == p.Stage {
			return fmt.Sprintf("[%d/%d] %s", i+1, len(updateStages), p.Message)
		}
	}
	return p.Message
}

// explainUpdateError turns the expected refusals into a printed note and
// adds a hint to permission failures.
func explainUpdateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Println("This is a development build. Install a release build to enable updates.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Printf("edunova %s is already installed.\n", version)
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nThe binary's directory is not writable. Try: sudo edunova update", err)
	}
	return err
}

func init() {
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
}
