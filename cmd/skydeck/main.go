// Command skydeck runs the tool server. By default it speaks newline-
// delimited JSON-RPC on stdin/stdout; with -serve it listens on WebSocket
// (and MQTT when configured) instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clawinfra/skydeck/internal/channels"
	"github.com/clawinfra/skydeck/internal/config"
	"github.com/clawinfra/skydeck/internal/dispatch"
	"github.com/clawinfra/skydeck/internal/providers"
)

var (
	version   = "0.2.0"
	buildTime = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to config file (.toml, .yaml, or .yml)")
		serve       = flag.Bool("serve", false, "listen on WebSocket/MQTT instead of stdio")
		listenAddr  = flag.String("listen", "", "WebSocket listen address (overrides config)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("skydeck %s (%s)\n", version, buildTime)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}

	// Logs go to stderr: in stdio mode stdout belongs to the protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	geocoder := providers.NewGeocoder(cfg.Providers.GeocodingURL, cfg.Timeout(), logger)
	weather := providers.NewWeatherClient(cfg.Providers.WeatherURL, cfg.Timeout(), logger)
	aviation := providers.NewAviationClient(
		cfg.Providers.AviationURL,
		cfg.Providers.CredentialEnv,
		cfg.Timeout(),
		cfg.Providers.CallsPerMinute,
		cfg.Providers.Burst,
		logger,
	)

	dispatcher, err := dispatch.New(geocoder, weather, aviation, logger)
	if err != nil {
		logger.Error("failed to build dispatcher", "error", err)
		return 1
	}
	handler := channels.NewHandler(dispatcher, cfg.Server.Name, version, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*serve {
		if err := channels.NewStdio(handler, os.Stdin, os.Stdout, logger).Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("stdio channel failed", "error", err)
			return 1
		}
		return 0
	}

	if cfg.MQTT.Enabled {
		mqttCh := channels.NewMQTT(cfg.MQTT.Broker, cfg.MQTT.Port, cfg.MQTT.Username, cfg.MQTT.Password, handler, logger)
		if err := mqttCh.Start(ctx); err != nil {
			logger.Error("mqtt channel failed to start", "error", err)
			return 1
		}
		defer func() { _ = mqttCh.Stop() }()
	}

	if err := channels.NewWS(handler, logger).Serve(ctx, cfg.Server.ListenAddr); err != nil {
		logger.Error("websocket channel failed", "error", err)
		return 1
	}
	return 0
}
