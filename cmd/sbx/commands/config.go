package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConfigCommand creates the domain config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the domain application configuration",
		Long:  "Fetch the domain app config and list its models and their properties.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			config, err := client.LoadConfig(context.Background())
			if err != nil {
				return fmt.Errorf("loading app config: %w", err)
			}

			output := viper.GetString("output")
			if done, err := renderStructured(config, output); done {
				return err
			}

			name := config.DomainName
			if name == "" {
				name = strconv.Itoa(config.Domain)
			}

			fmt.Printf("Domain: %s (%d)\n", name, config.Domain)
			fmt.Printf("Models: %d\n\n", len(config.Models))

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Model", "ID", "Properties")

			for _, model := range config.Models {
				table.Append(model.Name, strconv.Itoa(model.ID), strconv.Itoa(len(model.Properties)))
			}

			table.Render()

			return nil
		},
	}
}
