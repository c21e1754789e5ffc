// SPDX-License-Identifier: MIT
// Package cmd wires the fio command tree: cobra commands, viper-backed
// configuration, the structured logger and the process-wide worker pool.
package cmd

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/fio/internal/config"
	"github.com/katalvlaran/fio/internal/logging"
)

// app is the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	runID   string
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "fio",
		Short: "Input-output structural analysis",
		Long: `fio analyses an inter-industry transactions table: technical and
allocation coefficients, Leontief and Ghosh inverses, linkages, output and
satellite multipliers, hypothetical extraction and the field of influence.

Configuration is read from fio.yaml (working directory or $HOME/.config/fio),
FIO_* environment variables and flags, in increasing precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./fio.yaml or $HOME/.config/fio/fio.yaml)")
	pf.IntP("threads", "t", 0, "worker pool size; 0 uses one worker per CPU")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	_ = a.v.BindPFlag(config.KeyThreads, pf.Lookup("threads"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	root.AddCommand(newAnalyzeCmd(a), newThreadsCmd(a), newVersionCmd())

	return root
}

// Execute runs the fio command tree on os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and builds the run-scoped logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.runID = uuid.NewString()
	a.log = logging.WithRun(logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format), a.runID)
	a.log.Debug("configuration loaded",
		"config_file", a.v.ConfigFileUsed(), "threads", cfg.Threads, "format", cfg.Format)

	return nil
}
