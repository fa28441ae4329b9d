package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"streamgap/internal/api"
	"streamgap/internal/join"
	"streamgap/internal/providers"
	"streamgap/internal/report"
)

func newProviderCommand(ctx *commandContext) *cobra.Command {
	var episodes bool
	var all bool

	cmd := &cobra.Command{
		Use:   "provider <name>",
		Short: "List pending requests streamable on one provider",
		Long: "List pending movies and shows streamable on a provider, movies first.\n" +
			"Use --all to list every provider with at least one title.",
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) == 0 {
				return nil
			}
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("usage: %s", cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd, func(svc *services) error {
				if all {
					return runAllProviders(cmd, ctx, svc, episodes)
				}
				return runProvider(cmd, ctx, svc, args[0], episodes)
			})
		},
	}

	cmd.Flags().BoolVar(&episodes, "episodes", false, "Include missing-episode details for TV shows")
	cmd.Flags().BoolVar(&all, "all", false, "List every provider with at least one pending title")
	return cmd
}

func runProvider(cmd *cobra.Command, ctx *commandContext, svc *services, name string, episodes bool) error {
	group, err := svc.media.ByProvider(commandContextOrBackground(cmd), name)
	if errors.Is(err, join.ErrUnknownProvider) {
		msg := fmt.Sprintf("Provider %q not found", strings.TrimSpace(name))
		if ctx.jsonOutput() {
			return writeJSON(cmd, api.ErrorResponse{Error: msg})
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}
	if err != nil {
		return err
	}
	if ctx.jsonOutput() {
		return writeJSON(cmd, api.FromGroup(group, episodes))
	}
	out := cmd.OutOrStdout()
	printLines(out, renderHeading(group.Provider.ID, shouldColorize(out)))
	renderGroup(out, group, episodes)
	return nil
}

func runAllProviders(cmd *cobra.Command, ctx *commandContext, svc *services, episodes bool) error {
	groups, err := svc.media.Groups(commandContextOrBackground(cmd))
	if err != nil {
		return err
	}
	if ctx.jsonOutput() {
		resp := api.ProviderGroupsResponse{Groups: make([]api.ProviderMedia, 0, len(groups))}
		for _, g := range groups {
			resp.Groups = append(resp.Groups, api.FromGroup(g, episodes))
		}
		return writeJSON(cmd, resp)
	}

	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No pending titles are streamable on any provider")
		return nil
	}
	colorize := shouldColorize(out)
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printLines(out, renderHeading(group.Provider.ID, colorize))
		renderGroup(out, group, episodes)
	}
	return nil
}

func renderGroup(out io.Writer, group join.Group, episodes bool) {
	sorted := report.Sort(group.Requests)
	fmt.Fprintln(out, report.FoundLine(sorted))
	printLines(out, report.MediaList(sorted))
	if !episodes {
		return
	}
	for _, block := range report.AvailabilityBlocks(sorted) {
		fmt.Fprintln(out)
		printLines(out, block)
	}
}

func newProvidersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "providers",
		Short:       "Show the provider registry and alias conflicts",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := providers.MustDefaultRegistry()
			resp := api.FromRegistry(registry)
			if ctx.jsonOutput() {
				return writeJSON(cmd, resp)
			}

			rows := make([][]string, 0, len(resp.Providers))
			for _, p := range resp.Providers {
				rows = append(rows, []string{p.ID, p.BusinessModel, yesNo(p.Purchased), strings.Join(p.Aliases, ", ")})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"ID", "Model", "Purchased", "Aliases"}, rows, nil))

			colorize := shouldColorize(out)
			for _, c := range registry.Conflicts() {
				fmt.Fprintln(out, renderWarning(c.String(), colorize))
			}
			return nil
		},
	}
}
