package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"meetcanvas/app/client/attendee"
	"meetcanvas/app/client/miro"
	"meetcanvas/app/config"
	"meetcanvas/app/server"
	"meetcanvas/app/service/analyze"
	"meetcanvas/app/service/broadcast"
	"meetcanvas/app/service/diagram"
	"meetcanvas/app/service/session"
	"meetcanvas/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, attendee.NewClient)
	do.Provide(di, miro.NewClient)
	do.Provide(di, session.New)
	do.Provide(di, broadcast.New)
	do.Provide(di, analyze.New)
	do.Provide(di, diagram.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go func() {
		if err := do.MustInvoke[*server.Server](di).Run(); err != nil {
			slog.Error("Server stopped", "error", err)
			cancel()
		}
	}()

	<-appCtx.Done()
}
