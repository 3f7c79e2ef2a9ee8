package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taxiservice/config"
	"taxiservice/pkg/api"
	"taxiservice/pkg/bot"
	"taxiservice/pkg/fixtures"
	"taxiservice/pkg/logger"
	"taxiservice/service"
	"taxiservice/storage"
	"taxiservice/storage/backend"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs once storage is open.
type app struct {
	cfg config.Config
	log logger.ILogger
	stg storage.IStorage
	svc service.IServiceManager
}

func setup(ctx context.Context) (*app, error) {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	stg, err := backend.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open storage", logger.String("driver", cfg.DBDriver), logger.Error(err))
		return nil, err
	}
	return &app{cfg: cfg, log: log, stg: stg, svc: service.New(stg, cfg, log)}, nil
}

func (a *app) close() {
	a.stg.Close()
	_ = a.log.Sync()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "taxiservice",
		Short:        "Fleet management web service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newCreateUserCmd(), newLoadDataCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and, when a token is configured, the admin bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	srv := api.NewServer(&a.cfg, api.New(&a.cfg, a.svc, a.log))

	var adminBot *bot.Bot
	if a.cfg.TelegramBotToken != "" {
		adminBot, err = bot.New(&a.cfg, a.svc, a.log)
		if err != nil {
			a.log.Error("Failed to initialize admin bot", logger.Error(err))
			return err
		}
		go adminBot.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("🚀 HTTP server listening", logger.String("addr", srv.Addr), logger.String("db", a.cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			a.log.Error("HTTP server failed", logger.Error(err))
			return err
		}
	}

	a.log.Info("Shutting down...")
	if adminBot != nil {
		adminBot.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Graceful shutdown failed", logger.Error(err))
		return err
	}
	return nil
}

func newCreateUserCmd() *cobra.Command {
	var in service.CreateDriverInput
	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a driver account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			in.PasswordConfirm = in.Password
			d, err := a.svc.Driver().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created driver %q (id %d)\n", d.Username, d.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.Password, "password", "", "login password")
	cmd.Flags().StringVar(&in.LicenseNumber, "license", "", "license number, e.g. ABC12345")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().BoolVar(&in.IsStaff, "staff", false, "grant access to the admin pages")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoadDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loaddata <fixture.yaml>",
		Short: "Insert manufacturers, cars and drivers from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixtures.ParseFile(args[0])
			if err != nil {
				return err
			}
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			res, err := fixtures.Load(cmd.Context(), a.svc, f, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %d manufacturers, %d cars, %d drivers\n", res.Manufacturers, res.Cars, res.Drivers)
			return nil
		},
	}
}
