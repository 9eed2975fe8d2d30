package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meschbach/formrelay/internal/records"
	"github.com/meschbach/formrelay/internal/relay"
	"github.com/spf13/cobra"
)

func submitCommand() *cobra.Command {
	flags := &configFlags{}
	var body string
	submit := &cobra.Command{
		Use:   "submit [field=value...]",
		Short: "Sends one submission directly to the relay listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			payload, err := submissionPayload(body, args)
			if err != nil {
				return err
			}
			client := relay.NewClient(cfg.Web.RelayAddress)
			if err := client.Send(cmd.Context(), payload); err != nil {
				return err
			}
			fmt.Printf("Relayed %d bytes to %s\n", len(payload), cfg.Web.RelayAddress)
			return nil
		},
	}
	flags.register(submit)
	submit.Flags().StringVar(&body, "body", "", "Raw form encoded body, sent as is")
	return submit
}

func submissionPayload(body string, args []string) ([]byte, error) {
	if body != "" {
		if len(args) > 0 {
			return nil, errors.New("use either --body or field=value arguments")
		}
		return []byte(body), nil
	}
	if len(args) == 0 {
		return nil, errors.New("nothing to submit")
	}
	fields := records.Submission{}
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		fields[name] = value
	}
	return relay.Encode(fields), nil
}
