package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sbxcloud/sbx-go/pkg/sbx"
	"github.com/sbxcloud/sbx-go/pkg/sbxclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrAppKeyRequired     = errors.New("app key is required (use --app-key or SBX_APP_KEY)")
	ErrInvalidWhereFormat = errors.New("invalid condition format, expected field=value, field!=value, field>value, or field<value")
	ErrInvalidRowJSON     = errors.New("row data must be a JSON object or an array of objects")
)

// CreateClient builds a client from the persistent flags and environment.
func CreateClient() (sbx.Client, error) {
	appKey := viper.GetString("app-key")
	if appKey == "" {
		return nil, ErrAppKeyRequired
	}

	baseURL := viper.GetString("base-url")
	if baseURL == "" {
		baseURL = sbxclient.DefaultBaseURL
	}

	client, err := sbxclient.New(&sbx.Config{
		BaseURL: baseURL,
		Domain:  viper.GetInt("domain"),
		AppKey:  appKey,
		Token:   viper.GetString("token"),
		Debug:   viper.GetBool("verbose"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderStructured writes data as JSON or YAML, reporting whether the
// requested format was one of the two.
func renderStructured(data any, format string) (bool, error) {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding JSON: %w", err)
		}

		return true, nil
	case OutputFormatYAML:
		if err := yaml.NewEncoder(os.Stdout).Encode(data); err != nil {
			return true, fmt.Errorf("encoding YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

// rowColumns derives a stable column list from result rows: _KEY first,
// then the remaining fields sorted.
func rowColumns(rows []map[string]any) []string {
	seen := map[string]bool{}

	var columns []string

	for _, row := range rows {
		for field := range row {
			if !seen[field] {
				seen[field] = true

				columns = append(columns, field)
			}
		}
	}

	sortColumns(columns)

	return columns
}

func sortColumns(columns []string) {
	// _KEY leads, _META trails, the rest alphabetical.
	rank := func(column string) string {
		switch column {
		case "_KEY":
			return "0"
		case "_META":
			return "2" + column
		default:
			return "1" + column
		}
	}

	for i := 1; i < len(columns); i++ {
		for j := i; j > 0 && rank(columns[j]) < rank(columns[j-1]); j-- {
			columns[j], columns[j-1] = columns[j-1], columns[j]
		}
	}
}

func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseCondition splits a --where argument into field, operator, and
// value. Supported forms: field=value, field!=value, field>value,
// field>=value, field<value, field<=value.
func parseCondition(raw string) (field string, op sbx.Operation, value string, err error) {
	operators := []struct {
		symbol string
		op     sbx.Operation
	}{
		{symbol: "!=", op: sbx.OpNotEqual},
		{symbol: ">=", op: sbx.OpGreaterOrEqual},
		{symbol: "<=", op: sbx.OpLessOrEqual},
		{symbol: "=", op: sbx.OpEqual},
		{symbol: ">", op: sbx.OpGreaterThan},
		{symbol: "<", op: sbx.OpLessThan},
	}

	for _, candidate := range operators {
		before, after, found := strings.Cut(raw, candidate.symbol)
		if found && before != "" {
			return before, candidate.op, after, nil
		}
	}

	return "", "", "", fmt.Errorf("%w: %q", ErrInvalidWhereFormat, raw)
}

// conditionValue converts a CLI value string into a typed JSON value.
func conditionValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Not valid JSON, treat it as a plain string.
		return raw
	}

	return value
}
