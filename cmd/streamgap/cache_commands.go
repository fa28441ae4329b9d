package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the provider lookup cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheRefreshCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List cached lookups with their age",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipCredentials: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := ctx.openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(commandContextOrBackground(cmd), cfg.CacheTTL())
			if err != nil {
				return fmt.Errorf("list cache: %w", err)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			expired := 0
			for _, e := range entries {
				if e.Expired {
					expired++
				}
				rows = append(rows, []string{
					e.Category,
					e.Key,
					humanize.Time(e.StoredAt),
					humanize.Bytes(uint64(e.Size)),
					yesNo(e.Expired),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "Key", "Stored", "Size", "Expired"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d entries, %d expired\n", len(entries), expired)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "clear",
		Short:       "Remove every cached lookup",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipCredentials: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := ctx.openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			return withCacheLock(cfg, func() error {
				removed, err := store.Clear(commandContextOrBackground(cmd))
				if err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]int{"removed": removed})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entries\n", removed)
				return nil
			})
		},
	}
}

func newCacheRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch expired cache entries from TMDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd, func(svc *services) error {
				return withCacheLock(svc.cfg, func() error {
					stats, err := svc.cache.RefreshExpired(commandContextOrBackground(cmd), svc.cfg.CacheTTL(), svc.catalog.Refreshers())
					if err != nil {
						return fmt.Errorf("refresh cache: %w", err)
					}
					if ctx.jsonOutput() {
						return writeJSON(cmd, stats)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d, skipped %d fresh, failed %d, unknown %d\n",
						stats.Refreshed, stats.Skipped, stats.Failed, stats.Unknown)
					return nil
				})
			})
		},
	}
}
