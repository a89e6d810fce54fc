package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frylyle/internal/app/notifysub"
	"frylyle/internal/app/storefront"
	"frylyle/internal/backend"
	"frylyle/internal/catalog"
	"frylyle/internal/checkout"
	"frylyle/internal/common/config"
	"frylyle/internal/common/logger"
	"frylyle/internal/common/mq"
	"frylyle/internal/notify"
	"frylyle/internal/profile"
	"frylyle/internal/storage"
)

func main() {
	mode := flag.String("mode", "", "storefront | notification-subscriber")
	port := flag.Int("port", 3000, "storefront: http port")
	cfgPath := flag.String("config", "", "path to YAML config (default: config.yaml, deploy/config.example.yaml)")
	flag.Parse()

	lg := logger.New("bootstrap")

	path := *cfgPath
	if path == "" {
		found, err := config.FindConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no config file found; pass --config")
			os.Exit(2)
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "storefront":
		lg.Info("service_started", map[string]any{"service": "storefront", "port": *port})
		if err := runStorefront(ctx, *port, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if !cfg.Rabbit.Enabled {
			fmt.Fprintln(os.Stderr, "rabbitmq must be enabled for notification-subscriber")
			os.Exit(2)
		}
		client, err := dialRabbit(cfg)
		if err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
		defer client.Close()
		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		if err := notifysub.Run(ctx, client); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: storefront | notification-subscriber")
		os.Exit(2)
	}
}

func runStorefront(ctx context.Context, port int, cfg config.App) error {
	lg := logger.New("storefront")

	driver, cleanup, err := newDriver(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	deps := storefront.Deps{
		Driver:          driver,
		Catalog:         catalog.New(),
		NotificationTTL: time.Duration(cfg.Storefront.NotificationTTLMs) * time.Millisecond,
		Logger:          lg,
	}
	if cfg.Storefront.DemoSeed {
		deps.Seed = catalog.DemoCart()
	}

	var rabbit *mq.Client
	if cfg.Rabbit.Enabled {
		rabbit, err = dialRabbit(cfg)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		deps.Relay = notify.NewRelay(rabbit, mq.NotificationsExchange, lg)
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})
	}

	if cfg.Firebase.ProjectID != "" {
		fb, err := backend.NewFirebase(ctx, cfg.Firebase)
		if err != nil {
			return err
		}
		defer fb.Close()
		identity := fb.Identity()
		deps.Identity = identity
		deps.Profile = profile.NewService(identity, fb.Documents(), fb.Objects(), lg)
		var pub checkout.Publisher
		if rabbit != nil {
			pub = rabbit
		}
		deps.Checkout = checkout.NewService(fb.Documents(), pub, lg)
		lg.Info("firebase_connected", map[string]any{"project": cfg.Firebase.ProjectID})
	}

	return storefront.Run(ctx, port, deps)
}

func newDriver(ctx context.Context, cfg config.App) (storage.Driver, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemoryDriver(), func() {}, nil
	case "file":
		d, err := storage.NewFileDriver(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	case "postgres":
		d, err := storage.NewPostgresDriver(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func dialRabbit(cfg config.App) (*mq.Client, error) {
	client, err := mq.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Password, cfg.Rabbit.VHost)
	if err != nil {
		return nil, err
	}
	if err := client.DeclareAll(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
