package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/starford/quill/internal/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Stream vault changes until interrupted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runWatch(ctx, a)
		},
	}
}

// runWatch prints one line per observed note change. It stops on
// SIGINT/SIGTERM or when the context is cancelled.
func runWatch(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watch.Run(gCtx, a.store.Vault().Root(), a.logger, func(ev watch.Event) {
			fmt.Fprintf(a.stdout, "%-7s  %-7s  %s\n", ev.Kind, ev.Area, ev.ID)
		})
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Info("received shutdown signal", "signal", sig.String())
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	return g.Wait()
}
