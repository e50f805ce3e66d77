// Package cli holds the focusboard cobra commands. The root command opens
// the TUI; subcommands run a single operation against the same state.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusboard/internal/config"
	"github.com/sadopc/focusboard/internal/hub"
	"github.com/sadopc/focusboard/internal/logging"
	"github.com/sadopc/focusboard/internal/store"
)

// Set at build time with -ldflags "-X .../internal/cli.version=...".
var (
	version = "dev"
	commit  = "none"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	ConfigFile string
}

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg *config.Config
	log *slog.Logger
	hub *hub.Hub

	logCloser io.Closer
}

func (o *rootOptions) open() (*env, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	log.Debug("store opened", slog.String("backend", cfg.Store.Backend), slog.String("path", cfg.Store.Path))

	return &env{
		cfg:       cfg,
		log:       log,
		hub:       hub.Open(kv, hub.WithLogger(log)),
		logCloser: closer,
	}, nil
}

func (e *env) close() error {
	return errors.Join(e.hub.Close(), e.logCloser.Close())
}

// run opens the environment, calls fn and always closes it again.
func (o *rootOptions) run(fn func(*env) error) (err error) {
	e, err := o.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); err == nil {
			err = cerr
		}
	}()
	return fn(e)
}

func New() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "focusboard",
		Short: "A terminal productivity dashboard: tasks, notes, habits and a pomodoro timer.",
		Example: `
focusboard
focusboard add task write the report --due 2024-05-01 --priority High
focusboard list tasks
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(runUI)
		},
	}
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "",
		"config file (default is $XDG_CONFIG_HOME/focusboard/config.yaml)")

	AddCommands(cmd, o)
	return cmd
}

func AddCommands(topLevel *cobra.Command, o *rootOptions) {
	addAdd(topLevel, o)
	addList(topLevel, o)
	addDone(topLevel, o)
	addRemove(topLevel, o)
	addHabit(topLevel, o)
	addSession(topLevel, o)
	addStats(topLevel, o)
	addSearch(topLevel, o)
	addExport(topLevel, o)
	addVersion(topLevel)
}

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the focusboard version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "focusboard %s (%s)\n", version, commit)
		},
	}
	topLevel.AddCommand(cmd)
}
