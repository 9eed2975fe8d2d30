package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/meschbach/formrelay/internal/junk/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

func main() {
	var logLevel string

	root := cobra.Command{
		Use:           "formrelay",
		Short:         "Form submission front end and record store relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logging.ParseLevel(logLevel))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	root.AddCommand(serveCommand())
	root.AddCommand(submitCommand())
	root.AddCommand(recordsCommand())
	root.AddCommand(healthCheckCommand())

	ctx, done := signal.NotifyContext(context.Background(), unix.SIGTERM, unix.SIGINT)
	err := root.ExecuteContext(ctx)
	done()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encountered error while servicing request: %s\n", err.Error())
		os.Exit(-1)
	}
}
