package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	"termlink/pkg/logging"
)

// runServer serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully. Under systemd the unit is told when the
// listener is ready and when shutdown starts.
func runServer(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return services.Server.Start(gctx, func(addr net.Addr) {
			logging.Info("Server", "Serving %s on http://%s", services.Annotator.Program(), addr)
			notifySystemd(daemon.SdNotifyReady)
		})
	})

	if services.Reconciler != nil {
		g.Go(func() error {
			// serving continues without file syncing
			if err := services.Reconciler.Run(gctx); err != nil {
				logging.Error("Reconciler", err, "Dashboard syncing stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Bootstrap", "Shutting down")
		notifySystemd(daemon.SdNotifyStopping)
		return nil
	})

	return g.Wait()
}

func notifySystemd(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.Warn("Bootstrap", "Failed to notify systemd: %v", err)
		return
	}
	if sent {
		logging.Debug("Bootstrap", "Notified systemd: %s", state)
	}
}
