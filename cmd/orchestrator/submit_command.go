package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/transcoding"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSubmitCommand(cc *commandContext) *cobra.Command {
	var (
		planFile string
		actorID  string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a rendition plan to the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(planFile)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			svc, err := openServices(ctx, cc)
			if err != nil {
				return err
			}
			defer svc.Close()

			var actor *models.User
			if actorID != "" {
				id, err := uuid.Parse(actorID)
				if err != nil {
					return fmt.Errorf("invalid actor id: %w", err)
				}
				if actor, err = svc.users.GetByID(ctx, id); err != nil {
					return err
				}
			}

			submitter, err := transcoding.NewSubmitter(cc.cfg.Transcoding, svc.deps)
			if err != nil {
				return err
			}
			if err := submitter.CreateJobs(ctx, plan, actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d transcoding jobs for video %s\n", plan.PayloadCount(), plan.VideoID())
			return nil
		},
	}
	cmd.Flags().StringVarP(&planFile, "plan", "p", "", "JSON file holding the rendition plan (array of stages)")
	cmd.Flags().StringVar(&actorID, "actor", "", "user id the jobs are created for")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func readPlan(path string) (transcoding.RenditionPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	var plan transcoding.RenditionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := transcoding.ValidatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}
