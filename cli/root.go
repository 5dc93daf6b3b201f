// Package cli implements the drivepath command line interface.
package cli

import (
	"context"
	"fmt"

	drivepath "github.com/drivepath/go-drivepath"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type ctxKey string

const configCtxKey ctxKey = "drivepathConfig"

// NewRootCommand builds the drivepath root command.
func NewRootCommand() *cobra.Command {
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "drivepath",
		Short: "drivepath addresses a remote object store by slash-delimited paths",
		Long: `drivepath resolves human-readable paths like /SharedDrive/reports/q1.csv
against a remote object store whose native API is flat and ID-addressed.
Roots are registered in a yaml config file; objects outside registered roots
are unreachable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
			cfg, err := drivepath.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configCtxKey, cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "drivepath.yaml", "path to the yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(listCommand())
	rootCmd.AddCommand(statCommand())
	rootCmd.AddCommand(getCommand())
	rootCmd.AddCommand(putCommand())
	rootCmd.AddCommand(removeCommand())
	rootCmd.AddCommand(moveCommand())
	rootCmd.AddCommand(mkdirCommand())

	return rootCmd
}

// getConfig returns the config loaded by the root command.
func getConfig(cmd *cobra.Command) drivepath.Config {
	cfg, _ := cmd.Context().Value(configCtxKey).(drivepath.Config)
	return cfg
}

// newDrive builds an authenticated client from application default
// credentials.
func newDrive(cmd *cobra.Command) (*drivepath.Drive, error) {
	ctx := cmd.Context()
	client, err := google.DefaultClient(ctx, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorized client: %w", err)
	}
	service, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to build drive service: %w", err)
	}
	return drivepath.New(service, getConfig(cmd), drivepath.WithCache())
}
