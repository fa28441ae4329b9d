package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamgap/internal/api"
	"streamgap/internal/availability"
	"streamgap/internal/report"
	"streamgap/internal/requests"
)

func newMediaCommand(ctx *commandContext, use string) *cobra.Command {
	kind := requests.KindMovie
	heading := "Movies"
	if use == "tv" {
		kind = requests.KindTV
		heading = "TV Shows"
	}

	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("List pending %s requests with their streaming providers", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd, func(svc *services) error {
				reqs, err := svc.media.Media(commandContextOrBackground(cmd), kind)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, api.MediaListResponse{Items: api.FromRequests(reqs)})
				}

				out := cmd.OutOrStdout()
				printLines(out, renderHeading(heading, shouldColorize(out)))
				if len(reqs) == 0 {
					fmt.Fprintf(out, "No pending %s requests\n", kind)
					return nil
				}
				for _, req := range reqs {
					fmt.Fprintln(out, report.ProvidersLine(req, req.ResolvedProviders))
				}
				return nil
			})
		},
	}
}

func newAvailabilityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "availability",
		Short: "Show missing seasons and episodes for pending TV requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd, func(svc *services) error {
				summaries, err := svc.media.Availability(commandContextOrBackground(cmd))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, api.AvailabilityResponse{Shows: summaries})
				}

				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No pending TV requests")
					return nil
				}
				for i, summary := range summaries {
					if i > 0 {
						fmt.Fprintln(out)
					}
					printLines(out, availability.Format(summary))
				}
				return nil
			})
		},
	}
}
