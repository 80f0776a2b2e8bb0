package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/client"
)

// ErrMalformedInput indicates ml query input that is not valid JSON.
// The check happens before any request is sent.
var ErrMalformedInput = errors.New("ml query input must be valid JSON")

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <agent-id> <input>",
		Short: "Submit a query to an agent",
		Long: `Submit a query to an agent. Rag and search agents receive the input
verbatim as query text. Ml agents require the input to be valid JSON,
which is sent as the training data parameter.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid agent id: %w", err)
			}
			input := args[1]

			agent, err := api.GetAgent(cmd.Context(), id)
			if err != nil {
				return err
			}

			query := input
			var parameters map[string]any

			if agent.Type == client.TypeML {
				var data any
				if err := json.Unmarshal([]byte(input), &data); err != nil {
					return fmt.Errorf("%w: %s", ErrMalformedInput, err)
				}
				query = ""
				parameters = map[string]any{"data": data}
			}

			resp, err := api.QueryAgent(cmd.Context(), *agent, query, parameters)
			if err != nil {
				return err
			}

			renderResponse(cmd, resp)
			return nil
		},
	}
}

// renderResponse prints the variant matching the agent type. Absent
// fields render as nothing.
func renderResponse(cmd *cobra.Command, resp *client.QueryResponse) {
	out := cmd.OutOrStdout()

	switch {
	case resp.RAG != nil:
		if resp.RAG.Answer != "" {
			fmt.Fprintln(out, resp.RAG.Answer)
		}
		if len(resp.RAG.SourceDocuments) > 0 {
			fmt.Fprintln(out, "\nSources:")
			for i, doc := range resp.RAG.SourceDocuments {
				fmt.Fprintf(out, "  %d. (score %.3f) %s\n", i+1, doc.Score, snippet(doc.Content))
			}
		}

	case resp.Search != nil:
		if resp.Search.Answer != "" {
			fmt.Fprintln(out, resp.Search.Answer)
		}
		if len(resp.Search.SearchResults) > 0 {
			fmt.Fprintln(out, "\nResults:")
			for i, r := range resp.Search.SearchResults {
				fmt.Fprintf(out, "  %d. %s\n     %s\n", i+1, r.Title, r.Link)
			}
		}

	case resp.ML != nil:
		fmt.Fprintf(out, "Model: %s (%s)\n", resp.ML.ModelType, resp.ML.TaskType)
		if resp.ML.TargetColumn != "" {
			fmt.Fprintf(out, "Target: %s\n", resp.ML.TargetColumn)
		}
		fmt.Fprintf(out, "Data shape: %d rows x %d columns\n", resp.ML.DataShape[0], resp.ML.DataShape[1])
		if len(resp.ML.Metrics) > 0 {
			fmt.Fprintln(out, "Metrics:")
			for _, name := range sortedKeys(resp.ML.Metrics) {
				fmt.Fprintf(out, "  %s: %.4f\n", name, resp.ML.Metrics[name])
			}
		}
		if resp.ML.Explanation != "" {
			fmt.Fprintf(out, "\n%s\n", resp.ML.Explanation)
		}
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func snippet(content string) string {
	const max = 120
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
