package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"marketplace/pkg/app/config"
	domainservice "marketplace/pkg/domain/service"
	"marketplace/pkg/infrastructure/auth"
	"marketplace/pkg/infrastructure/event"
	"marketplace/pkg/infrastructure/mysql"
	"marketplace/pkg/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "marketplace",
		Usage: "Marketplace backend service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Apply migrations and run the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply schema migrations and exit",
				Action: runMigrations,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Service failed")
	}
}

func runMigrations(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := mysql.NewDB(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Info("Migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := mysql.NewDB(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}

	dispatcher, closeDispatcher, err := newDispatcher(cfg)
	if err != nil {
		return err
	}
	defer closeDispatcher()

	uow := mysql.NewUnitOfWork(db)
	users := domainservice.NewUserService(uow, auth.NewBcryptPasswordManager(), dispatcher)
	products := domainservice.NewProductService(uow, dispatcher)
	orders := domainservice.NewOrderService(uow, dispatcher)
	reviews := domainservice.NewReviewService(uow, dispatcher)

	srv := &http.Server{
		Addr:    cfg.ServeHTTPAddress,
		Handler: transport.Router(users, products, orders, reviews),
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.WithField("address", cfg.ServeHTTPAddress).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		return srv.Shutdown(context.Background())
	})

	return group.Wait()
}

func newDispatcher(cfg *config.Config) (domainservice.EventDispatcher, func(), error) {
	if cfg.AMQPURL == "" {
		return event.NewLogDispatcher(), func() {}, nil
	}

	dispatcher, err := event.NewAMQPDispatcher(cfg.AMQPURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := dispatcher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close event dispatcher")
		}
	}
	return dispatcher, closeFn, nil
}
