package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"streamgap/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the media views as a read-only JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd, func(svc *services) error {
				addr := svc.cfg.Server.Bind
				if strings.TrimSpace(bind) != "" {
					addr = strings.TrimSpace(bind)
				}
				srv, err := server.New(addr, svc.media, svc.logger)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				return srv.Run(commandContextOrBackground(cmd), func(listening string) {
					fmt.Fprintf(out, "Serving on http://%s\n", listening)
				})
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to server.bind)")
	return cmd
}
