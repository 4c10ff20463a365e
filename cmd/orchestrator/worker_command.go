package main

import (
	"errors"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/transcoding"
	"github.com/gnout1912/VieTube-sub001/internal/worker"
	"github.com/spf13/cobra"
)

func newWorkerCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run transcoding-job-builder jobs from the internal queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cc.cfg.Transcoding.Backend != config.BackendQueue {
				return errors.New("worker requires the queue transcoding backend")
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			svc, err := openServices(ctx, cc)
			if err != nil {
				return err
			}
			defer svc.Close()

			builder := transcoding.NewQueueJobBuilder(
				cc.cfg.Transcoding,
				svc.deps.Resolver,
				svc.deps.QueueStore,
				svc.deps.JobInfo,
				cc.logger,
			)
			w := worker.NewWorker(cc.cfg, cc.logger, svc.queueStore)
			w.Register(models.QueueJobTranscodingJobBuilder, transcoding.NewJobBuilderHandler(builder))
			w.Start(ctx)
			<-ctx.Done()
			cc.logger.Infof("Shutting down...")
			w.Wait()
			return nil
		},
	}
}
