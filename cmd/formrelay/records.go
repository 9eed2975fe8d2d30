package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meschbach/formrelay/internal/records"
	"github.com/spf13/cobra"
)

func recordsCommand() *cobra.Command {
	flags := &configFlags{}
	var where []string
	var match string

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Prints stored submissions oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			doc, err := records.NewFileStore(cfg.Storage.Path).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, entry := range doc.Entries() {
				keep, err := selected(entry.Fields, where, match)
				if err != nil {
					return err
				}
				if !keep {
					continue
				}
				out, err := json.Marshal(entry.Fields)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", entry.When, string(out))
			}
			return nil
		},
	}
	list.Flags().StringArrayVarP(&where, "where", "w", nil, "Only records where field=value, repeatable")
	list.Flags().StringVarP(&match, "match", "m", "", "Only records containing this JSON object")

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspects the record store",
	}
	flags.register(cmd)
	cmd.AddCommand(list)
	return cmd
}

func selected(fields records.Submission, where []string, match string) (bool, error) {
	for _, clause := range where {
		path, value, found := strings.Cut(clause, "=")
		if !found {
			return false, fmt.Errorf("expected field=value, got %q", clause)
		}
		matched, err := records.FieldEquals(fields, path, value)
		if err != nil || !matched {
			return false, err
		}
	}
	if match != "" {
		return records.MatchesSubset(fields, json.RawMessage(match))
	}
	return true, nil
}
