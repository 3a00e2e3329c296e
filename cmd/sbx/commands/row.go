package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// NewRowCommand creates the row mutation command group.
func NewRowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Create, update, and delete model rows",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(newRowCreateCommand())
	cmd.AddCommand(newRowUpdateCommand())
	cmd.AddCommand(newRowDeleteCommand())

	return cmd
}

func newRowCreateCommand() *cobra.Command {
	var (
		data     string
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "create MODEL",
		Short: "Insert rows into a model",
		Long:  "Insert one or more rows. Row data is a JSON object or an array of objects.",
		Example: `  sbx row create product --data '{"name": "drill", "price": 99.5}'
  sbx row create product --file rows.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRowMutation(args[0], data, dataFile, func(ctx context.Context, client sbx.Client, rows []map[string]any) (*sbx.Response, error) {
				return client.Data().Create(ctx, args[0], rows)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "row data as JSON")
	cmd.Flags().StringVar(&dataFile, "file", "", "file containing row data as JSON")

	return cmd
}

func newRowUpdateCommand() *cobra.Command {
	var (
		data     string
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "update MODEL",
		Short: "Update rows of a model",
		Long:  "Update one or more rows by key. Each row object must carry its _KEY field.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRowMutation(args[0], data, dataFile, func(ctx context.Context, client sbx.Client, rows []map[string]any) (*sbx.Response, error) {
				return client.Data().Update(ctx, args[0], rows)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "row data as JSON")
	cmd.Flags().StringVar(&dataFile, "file", "", "file containing row data as JSON")

	return cmd
}

func newRowDeleteCommand() *cobra.Command {
	var (
		keys  []string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete MODEL",
		Short: "Delete rows of a model by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(keys) == 0 {
				return cmd.Help()
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete %d row(s) of '%s'? (y/N): ", len(keys), args[0])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			where := sbx.Keys(keys)

			resp, err := client.Data().Delete(context.Background(), args[0], &where)
			if err != nil {
				return fmt.Errorf("deleting rows: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("delete rejected: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted %d row(s)\n", len(keys))

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&keys, "key", nil, "row key to delete (repeatable)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func runRowMutation(model, data, dataFile string, mutate func(context.Context, sbx.Client, []map[string]any) (*sbx.Response, error)) error {
	rows, err := parseRows(data, dataFile)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := mutate(context.Background(), client, rows)
	if err != nil {
		return fmt.Errorf("writing %s rows: %w", model, err)
	}

	if err := resp.Err(); err != nil {
		return fmt.Errorf("write rejected: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Affected %d row(s)\n", len(resp.Keys))

	for _, key := range resp.Keys {
		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", key)
	}

	return nil
}

func parseRows(data, dataFile string) ([]map[string]any, error) {
	raw := []byte(data)

	if dataFile != "" {
		content, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("reading row data file: %w", err)
		}

		raw = content
	}

	if len(raw) == 0 {
		return nil, ErrInvalidRowJSON
	}

	var single map[string]any
	if err := json.Unmarshal(raw, &single); err == nil {
		return []map[string]any{single}, nil
	}

	var many []map[string]any
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}

	return nil, ErrInvalidRowJSON
}
