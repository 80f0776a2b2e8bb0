package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/client"
)

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Manage agents",
	}

	cmd.AddCommand(newAgentsListCmd())
	cmd.AddCommand(newAgentsGetCmd())
	cmd.AddCommand(newAgentsCreateCmd())
	cmd.AddCommand(newAgentsUpdateCmd())
	cmd.AddCommand(newAgentsDeleteCmd())

	return cmd
}

func newAgentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := api.ListAgents(cmd.Context())
			if err != nil {
				return err
			}

			if len(agents) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No agents.")
				return nil
			}

			for _, a := range agents {
				description := ""
				if a.Description != nil {
					description = *a.Description
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %-20s %s\n", a.ID, a.Type, a.Name, description)
			}
			return nil
		},
	}
}

func newAgentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <agent-id>",
		Short: "Show an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid agent id: %w", err)
			}

			agent, err := api.GetAgent(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printJSON(cmd, agent)
		},
	}
}

func newAgentsCreateCmd() *cobra.Command {
	var (
		agentType   string
		description string
		configJSON  string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := parseConfig(configJSON)
			if err != nil {
				return err
			}

			req := client.AgentRequest{
				Name:   args[0],
				Type:   client.AgentType(agentType),
				Config: config,
			}
			if description != "" {
				req.Description = &description
			}

			agent, err := api.CreateAgent(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created agent %s (%s).\n", agent.Name, agent.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentType, "type", "t", "", "agent type (rag, search, ml)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "agent description")
	cmd.Flags().StringVarP(&configJSON, "config", "c", "", "agent config as a JSON object")
	cmd.MarkFlagRequired("type")

	return cmd
}

func newAgentsUpdateCmd() *cobra.Command {
	var (
		name        string
		description string
		configJSON  string
	)

	cmd := &cobra.Command{
		Use:   "update <agent-id>",
		Short: "Update an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid agent id: %w", err)
			}

			current, err := api.GetAgent(cmd.Context(), id)
			if err != nil {
				return err
			}

			req := client.AgentRequest{
				Name:        current.Name,
				Description: current.Description,
				Config:      current.Config,
			}
			if name != "" {
				req.Name = name
			}
			if description != "" {
				req.Description = &description
			}
			if configJSON != "" {
				config, err := parseConfig(configJSON)
				if err != nil {
					return err
				}
				req.Config = config
			}

			agent, err := api.UpdateAgent(cmd.Context(), id, req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated agent %s.\n", agent.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new agent name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new agent description")
	cmd.Flags().StringVarP(&configJSON, "config", "c", "", "new agent config as a JSON object")

	return cmd
}

func newAgentsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <agent-id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid agent id: %w", err)
			}

			if !yes && !confirm(cmd, fmt.Sprintf("Delete agent %s?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			if err := api.DeleteAgent(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted agent %s.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// confirm prompts for a y/N answer on the command's input stream.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseConfig(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}

	var config map[string]any
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		return nil, fmt.Errorf("config must be a JSON object: %w", err)
	}
	return config, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
