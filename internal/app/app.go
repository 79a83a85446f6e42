// Package app wires the command bridge for the serve command.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/sheetqr/sheetqr-go/internal/bridge"
	"github.com/sheetqr/sheetqr-go/internal/config"
	"github.com/sheetqr/sheetqr-go/internal/logger"
)

// Module provides the logger, the bridge handler and the HTTP server
// bound to the fx lifecycle.
func Module(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newBridge,
			newHTTPServer,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(func(*http.Server) {}),
	)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Level)
}

func newBridge(cfg config.Config, log *zap.Logger) http.Handler {
	return bridge.NewServer(log.Named("bridge"), cfg.ExtractOptions(), cfg.QRCode.Size).Routes()
}

func newHTTPServer(lc fx.Lifecycle, cfg config.Config, handler http.Handler, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("bridge listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("bridge stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			defer log.Sync()
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
