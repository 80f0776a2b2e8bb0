package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "upload <agent-id> <file>",
		Short: "Upload a document to a rag agent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid agent id: %w", err)
			}
			path := args[1]

			// The file must exist before any request is issued. An
			// empty collection defers to the agent's collection_name.
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("file not found: %s", path)
			}
			if info.IsDir() {
				return fmt.Errorf("not a file: %s", path)
			}

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			result, err := api.UploadDocument(cmd.Context(), id, filepath.Base(path), file, collection)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d chunks)\n", result.Message, result.DocumentCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "target collection (default: the agent's configured collection_name)")

	return cmd
}
