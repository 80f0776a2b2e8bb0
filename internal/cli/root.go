// Package cli implements the agentctl command line interface over the
// platform API client.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/client"
)

const defaultAPIURL = "http://localhost:8000"

var (
	apiURL      string
	sessionPath string

	// api is initialized in PersistentPreRunE; tests inject their own.
	api *client.Client
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentctl",
		Short: "agentctl interacts with the agentic AI platform",
		Long:  "agentctl manages platform accounts and agents, submits queries, and uploads documents for retrieval-augmented agents.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if api != nil {
				return nil
			}

			base := apiURL
			if env := os.Getenv("AGENT_API_URL"); base == defaultAPIURL && env != "" {
				base = env
			}

			path := sessionPath
			if path == "" {
				resolved, err := client.DefaultSessionPath()
				if err != nil {
					return err
				}
				path = resolved
			}

			api = client.New(base, client.NewFileSession(path))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultAPIURL, "platform API base URL")
	cmd.PersistentFlags().StringVar(&sessionPath, "session", "", "session token file (default under the user config directory)")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newAgentsCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newUploadCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
