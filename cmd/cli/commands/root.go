// Package commands implements the flow CLI command tree
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmflow/flow/internal/constants"
	"github.com/pmflow/flow/pkg/api/v1/client"
)

// flag names
const (
	flagServerAddress = "server-address"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", client.DefaultBaseURL,
		"Address of the Flow API server (env: FLOW_SERVER_ADDRESS)")

	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetSprintsCmd())
	RootCmd.AddCommand(GetTasksCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "flow",
	Short: "Flow CLI - A command line interface for the Flow API",
	Long:  `Flow CLI is a command line tool for managing projects, sprints and tasks through the Flow API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > env var > default
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(constants.EnvServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}

		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
