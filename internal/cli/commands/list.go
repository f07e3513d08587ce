package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/powerjson/powerjson/pkg/convert"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available converters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "json" {
				return listJSON(cmd)
			}
			return listText(cmd)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func listText(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMMAND\tPLATFORMS\tDESCRIPTION")
	for _, c := range convert.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.Name(),
			strings.Join(c.Magic(), ","),
			strings.Join(c.Compatible(), ","),
			c.Description(),
		)
	}
	return w.Flush()
}

// ListEntry is one converter in JSON output.
type ListEntry struct {
	Name        string   `json:"name"`
	Magic       []string `json:"magic"`
	Compatible  []string `json:"compatible"`
	Description string   `json:"description"`
}

func listJSON(cmd *cobra.Command) error {
	entries := make([]ListEntry, 0)
	for _, c := range convert.All() {
		entries = append(entries, ListEntry{
			Name:        c.Name(),
			Magic:       c.Magic(),
			Compatible:  c.Compatible(),
			Description: c.Description(),
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
