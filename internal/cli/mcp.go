package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/starford/quill/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve note tools to agents over stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			a.logger.Info("mcp: serving on stdio", "vault", a.store.Vault().Root())
			return mcpserver.New(a.store).ServeStdio()
		},
	}
}
