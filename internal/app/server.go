package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cradoe/profilegate/internal/worker"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 90 * time.Second
	defaultWriteTimeout   = 90 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

// ServeHTTP runs the server and the event workers until SIGINT or SIGTERM,
// then drains in-flight requests and background tasks.
func (app *Application) ServeHTTP() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.HttpPort),
		Handler:      app.routes(),
		ErrorLog:     slog.NewLogLogger(app.Logger.Handler(), slog.LevelWarn),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wk := worker.New(&worker.Worker{
		KafkaStream: app.Kafka,
		Cache:       app.Cache,
		Logger:      app.Logger,
	})

	app.WG.Add(1)
	go func() {
		defer app.WG.Done()
		if err := wk.Run(ctx); err != nil {
			app.Logger.Error("worker stopped", "error", err)
		}
	}()

	shutdownErrorChan := make(chan error)

	go func() {
		<-ctx.Done()
		app.Logger.Info("shutting down server", slog.Group("server", "addr", srv.Addr))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
		defer cancel()

		shutdownErrorChan <- srv.Shutdown(shutdownCtx)
	}()

	app.Logger.Info("starting server", slog.Group("server", "addr", srv.Addr), "pid", os.Getpid())

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		stop()
		app.WG.Wait()
		return err
	}

	err = <-shutdownErrorChan
	if err != nil {
		return err
	}

	app.WG.Wait()
	app.Logger.Info("stopped server", slog.Group("server", "addr", srv.Addr))

	return nil
}
