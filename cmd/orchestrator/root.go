package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
	"github.com/spf13/cobra"
)

type commandContext struct {
	configFile string
	cfg        *config.Config
	logger     logger.Logger
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	root := &cobra.Command{
		Use:           "orchestrator",
		Short:         "Submit and drive transcoding job graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.load()
		},
	}
	root.PersistentFlags().StringVarP(&cc.configFile, "config", "c", "config/config.yml", "path to the config file")

	root.AddCommand(newWorkerCommand(cc))
	root.AddCommand(newSubmitCommand(cc))
	return root
}

func (cc *commandContext) load() error {
	v, err := config.LoadConfig(cc.configFile)
	if err != nil {
		return err
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return err
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("LogLevel: %s, Backend: %s", cfg.Logger.Level, cfg.Transcoding.Backend)

	cc.cfg = cfg
	cc.logger = appLogger
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
