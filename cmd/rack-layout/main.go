package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/braunma/rack-layout/pkg/config"
	"github.com/braunma/rack-layout/pkg/loader"
	"github.com/braunma/rack-layout/pkg/state"
	"github.com/braunma/rack-layout/pkg/utils"
)

var (
	verbose    bool
	configFile string
	layoutFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rack-layout",
		Short:         "Rack layout designer",
		Long:          `Import cabinet workbooks, place cabinets on a floor plan and export render scenes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&layoutFile, "layout", "", "Layout file to read and update (overrides config)")

	rootCmd.AddCommand(
		newImportCmd(),
		newMoveCmd(),
		newDropCmd(),
		newOverlapsCmd(),
		newSceneCmd(),
		newCapacityCmd(),
		newTemplateCmd(),
	)
	return rootCmd
}

// app bundles what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *utils.Logger
	loader *loader.DataLoader
	store  *state.Store
}

// newApp loads configuration and an empty store
func newApp(cmd *cobra.Command) (*app, error) {
	logger := utils.NewLoggerTo(verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, path, err := config.Load(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", err)
		return nil, err
	}
	if path != "" {
		logger.Debug("Using configuration %s", path)
	}
	if layoutFile != "" {
		cfg.LayoutFile = layoutFile
	}

	store := state.NewStore(cfg.Floor, logger)
	if err := store.SetViewMode(state.ViewMode(cfg.ViewMode)); err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		loader: loader.NewDataLoader("", logger),
		store:  store,
	}, nil
}

// open loads the saved layout into the store
func (a *app) open() error {
	layout, err := a.loader.LoadLayout(a.cfg.LayoutFile)
	if err != nil {
		a.logger.Error("Failed to load layout", err)
		return err
	}
	if err := a.store.Load(*layout); err != nil {
		a.logger.Error("Layout is invalid", err)
		return err
	}
	return nil
}

// save writes the store back to the layout file
func (a *app) save() error {
	if err := a.loader.SaveLayout(a.cfg.LayoutFile, a.store.Layout()); err != nil {
		a.logger.Error("Failed to save layout", err)
		return err
	}
	return nil
}
