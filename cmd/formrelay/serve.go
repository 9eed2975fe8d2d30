package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/meschbach/formrelay/internal/service"
	"github.com/spf13/cobra"
)

// configFlags binds the command line overrides shared by every command touching configuration.
type configFlags struct {
	file       string
	httpAddr   string
	relayAddr  string
	relayDial  string
	storage    string
	assetRoot  string
	staticRoot string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.file, "config", "c", "formrelay.json", "JSON configuration file, ignored when missing")
	cmd.PersistentFlags().StringVar(&f.httpAddr, "http-address", "", "Address the web listener binds")
	cmd.PersistentFlags().StringVar(&f.relayAddr, "relay-address", "", "Address the relay listener binds")
	cmd.PersistentFlags().StringVar(&f.relayDial, "relay-dial", "", "Address submissions are relayed to")
	cmd.PersistentFlags().StringVar(&f.storage, "storage", "", "Path of the record store document")
	cmd.PersistentFlags().StringVar(&f.assetRoot, "assets", "", "Directory holding the index, message and error views")
	cmd.PersistentFlags().StringVar(&f.staticRoot, "static-root", "", "Directory static files are served from")
}

// load layers defaults, the configuration file, the environment then flags.
func (f *configFlags) load() (service.Config, error) {
	cfg := service.DefaultConfig()
	if _, err := os.Stat(f.file); err == nil {
		if err := cfg.LoadFile(f.file); err != nil {
			return cfg, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	cfg.LoadEnv()
	override(&cfg.Web.Address, f.httpAddr)
	override(&cfg.Relay.Address, f.relayAddr)
	override(&cfg.Web.RelayAddress, f.relayDial)
	override(&cfg.Storage.Path, f.storage)
	override(&cfg.Web.AssetRoot, f.assetRoot)
	override(&cfg.Web.StaticRoot, f.staticRoot)
	return cfg, nil
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func serveCommand() *cobra.Command {
	flags := &configFlags{}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Runs the web and relay listeners until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return service.Serve(cmd.Context(), cfg)
		},
	}
	flags.register(serve)
	return serve
}
