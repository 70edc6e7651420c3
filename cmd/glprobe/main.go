// Command glprobe inspects the GL capabilities seen by glstate and runs a
// synthetic state-change workload against a driver.
//
// Usage:
//
//	glprobe caps [--driver core33] [--profile intel.toml]
//	glprobe bench [--frames 1000] [--sets 64] [--metrics]
//
// Without the gl build tag only the recording drivers of package backend
// are available.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend"
	"github.com/gogpu/glstate/config"
)

var (
	driverName  string
	profilePath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "glprobe",
	Short: "Inspect and exercise the glstate cache",
	Long: `glprobe reports the capabilities glstate detects for a GL driver and
measures how many GL calls the state cache issues for a synthetic scene.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			glstate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&driverName, "driver", "d", "",
		fmt.Sprintf("driver to probe (%s); empty picks the best available", strings.Join(backend.Available(), ", ")))
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "TOML profile to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(capsCmd, benchCmd)
}

// loadProfile returns the profile named by --profile, or the defaults.
func loadProfile() (*config.Profile, error) {
	if profilePath == "" {
		return config.Default(), nil
	}
	return config.LoadFile(profilePath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
