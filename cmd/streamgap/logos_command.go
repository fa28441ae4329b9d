package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"streamgap/internal/config"
	"streamgap/internal/logos"
)

func newLogosCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "logos",
		Short: "Download TMDB watch-provider logos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			target := cfg.Logos.Dir
			if strings.TrimSpace(dir) != "" {
				if target, err = config.ExpandPath(dir); err != nil {
					return fmt.Errorf("resolve logo dir: %w", err)
				}
			}

			client, err := ctx.newTMDBClient(cfg)
			if err != nil {
				return fmt.Errorf("tmdb client: %w", err)
			}
			downloader, err := logos.NewDownloader(client, cfg.TMDB.ImageBaseURL, target,
				logos.WithHTTPClient(&http.Client{Timeout: cfg.TMDBTimeout()}),
				logos.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			res, err := downloader.Download(commandContextOrBackground(cmd))
			if err != nil {
				return fmt.Errorf("download logos: %w", err)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Downloaded %d logos to %s (skipped %d, failed %d)\n",
				len(res.Downloaded), target, res.Skipped, len(res.Failed))
			colorize := shouldColorize(out)
			for _, name := range res.Failed {
				fmt.Fprintln(out, renderWarning("no logo for "+name, colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Destination directory (defaults to logos.dir)")
	return cmd
}
