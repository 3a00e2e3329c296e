package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// NewFindCommand creates the row query command.
func NewFindCommand() *cobra.Command {
	var (
		conditions []string
		keys       []string
		fetch      []string
		rfetch     []string
		page       int
		size       int
		allPages   bool
	)

	cmd := &cobra.Command{
		Use:   "find MODEL",
		Short: "Query model rows",
		Long: `Query rows of a model, optionally filtered by conditions or keys.

Conditions use field=value, field!=value, field>value, field>=value,
field<value, or field<=value. Values are parsed as JSON when possible, so
active=true is a boolean and price>10 a number. Multiple conditions are
combined with AND.`,
		Example: `  sbx find product --where active=true --where "price>10" --size 50
  sbx find product --key a1b2c3 --key d4e5f6
  sbx find product --all --fetch supplier`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := buildFindQuery(args[0], conditions, keys, fetch, rfetch, page, size)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var resp *sbx.FindResponse[map[string]any]
			if allPages {
				resp = sbx.FindAll[map[string]any](ctx, client.Data(), query)
			} else {
				resp = sbx.Find[map[string]any](ctx, client.Data(), query)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("find failed: %w", err)
			}

			return outputRows(resp, allPages, page)
		},
	}

	cmd.Flags().StringArrayVarP(&conditions, "where", "w", nil, "filter condition (repeatable)")
	cmd.Flags().StringArrayVar(&keys, "key", nil, "select by row key (repeatable, overrides --where)")
	cmd.Flags().StringSliceVar(&fetch, "fetch", nil, "reference fields to resolve inline")
	cmd.Flags().StringSliceVar(&rfetch, "rfetch", nil, "referencing models to resolve")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page to fetch")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "page size")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func buildFindQuery(model string, conditions, keys, fetch, rfetch []string, page, size int) (*sbx.FindQuery, error) {
	query := sbx.NewFindQuery(model)

	for _, raw := range conditions {
		field, op, rawValue, err := parseCondition(raw)
		if err != nil {
			return nil, err
		}

		value := conditionValue(rawValue)

		switch op {
		case sbx.OpNotEqual:
			query.AndWhereIsNotEqualTo(field, value)
		case sbx.OpGreaterThan:
			query.AndWhereIsGreaterThan(field, value)
		case sbx.OpGreaterOrEqual:
			query.AndWhereIsGreaterOrEqualTo(field, value)
		case sbx.OpLessThan:
			query.AndWhereIsLessThan(field, value)
		case sbx.OpLessOrEqual:
			query.AndWhereIsLessOrEqualTo(field, value)
		default:
			query.AndWhereIsEqualTo(field, value)
		}
	}

	if len(keys) > 0 {
		query.WhereWithKeys(keys)
	}

	if len(fetch) > 0 {
		query.FetchModels(fetch)
	}

	if len(rfetch) > 0 {
		query.FetchReferencingModels(rfetch)
	}

	if page > 0 {
		query.SetPage(page)
	}

	if size > 0 {
		query.SetPageSize(size)
	}

	return query, nil
}

func outputRows(resp *sbx.FindResponse[map[string]any], allPages bool, page int) error {
	output := viper.GetString("output")

	if done, err := renderStructured(resp.Results, output); done {
		return err
	}

	if len(resp.Results) == 0 {
		fmt.Println("No rows found")

		return nil
	}

	columns := rowColumns(resp.Results)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(columns)

	for _, row := range resp.Results {
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = cellValue(row[column])
		}

		table.Append(cells)
	}

	table.Render()

	if !allPages && resp.TotalPages > 1 {
		current := page
		if current == 0 {
			current = 1
		}

		fmt.Printf("\nShowing page %d of %d. Use --all to fetch all pages.\n", current, resp.TotalPages)
	}

	return nil
}
