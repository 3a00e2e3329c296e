package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewScriptCommand creates the cloud script command.
func NewScriptCommand() *cobra.Command {
	var (
		params     string
		paramsFile string
		test       bool
	)

	cmd := &cobra.Command{
		Use:   "script KEY",
		Short: "Run a cloud script",
		Long:  "Execute a cloud script by key and print its payload. Use --test to run the unpublished test revision.",
		Example: `  sbx script a1b2c3 --params '{"order": 42}'
  sbx script a1b2c3 --params-file input.json --test`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptParams, err := parseScriptParams(params, paramsFile)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var payload json.RawMessage
			if test {
				payload, err = client.CloudScripts().RunTest(ctx, args[0], scriptParams)
			} else {
				payload, err = client.CloudScripts().Run(ctx, args[0], scriptParams)
			}

			if err != nil {
				return fmt.Errorf("running script: %w", err)
			}

			return printScriptPayload(payload)
		},
	}

	cmd.Flags().StringVar(&params, "params", "", "script parameters as a JSON object")
	cmd.Flags().StringVar(&paramsFile, "params-file", "", "file containing script parameters as JSON")
	cmd.Flags().BoolVar(&test, "test", false, "run the unpublished test revision")

	return cmd
}

func parseScriptParams(params, paramsFile string) (map[string]any, error) {
	raw := []byte(params)

	if paramsFile != "" {
		content, err := os.ReadFile(paramsFile)
		if err != nil {
			return nil, fmt.Errorf("reading params file: %w", err)
		}

		raw = content
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing script params: %w", err)
	}

	return parsed, nil
}

func printScriptPayload(payload json.RawMessage) error {
	// Re-indent when the payload is JSON, pass it through otherwise.
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		_, _ = os.Stdout.Write(payload)
		_, _ = os.Stdout.WriteString("\n")

		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(decoded); err != nil {
		return fmt.Errorf("encoding script output: %w", err)
	}

	return nil
}
