package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-irrigation-backend/internal/auth"
	"github.com/tbourn/go-irrigation-backend/internal/domain"
	httpapi "github.com/tbourn/go-irrigation-backend/internal/http"
	"github.com/tbourn/go-irrigation-backend/internal/observability"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
	"github.com/tbourn/go-irrigation-backend/internal/scheduler"
	"github.com/tbourn/go-irrigation-backend/internal/seed"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

const shutdownTimeout = 15 * time.Second

var (
	seedFile  string
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduler loop",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	tickCmd = &cobra.Command{
		Use:   "tick",
		Short: "Run one scheduler tick and exit",
		Args:  cobra.NoArgs,
		RunE:  runTick,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := openDB(); err != nil {
				return err
			}
			log.Info().Str("driver", cfg.DB.Driver).Msg("schema up to date")
			return nil
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load plants and accounts from a YAML file",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE:  runToken,
	}
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed document")
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id (token subject)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", domain.RoleUser, "role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := openDB()
	if err != nil {
		return err
	}
	gw, err := newGateway()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, gw, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	done := make(chan struct{})
	if cfg.Scheduler.Enabled {
		sched := &services.SchedulerService{DB: db, Actuator: gw, Loc: cfg.Scheduler.Location}
		runner := scheduler.New(sched, cfg.Scheduler.Interval, func(ctx context.Context, now time.Time) (int64, error) {
			return repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
		})
		go func() {
			defer close(done)
			runner.Run(ctx)
		}()
	} else {
		close(done)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", appVersion()).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			stop()
			<-done
			return fmt.Errorf("http server: %w", err)
		}
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	<-done

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func runTick(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	gw, err := newGateway()
	if err != nil {
		return err
	}
	sched := &services.SchedulerService{DB: db, Actuator: gw, Loc: cfg.Scheduler.Location}
	rep, err := sched.Tick(cmd.Context())
	if err != nil {
		return err
	}
	purged, err := repo.PurgeExpiredIdempotency(cmd.Context(), db, time.Now().UTC())
	if err != nil {
		log.Warn().Err(err).Msg("purge idempotency keys")
	}
	log.Info().
		Str("at", rep.At.String()).
		Int("to_start", len(rep.ToStart)).
		Int("to_stop", len(rep.ToStop)).
		Bool("started", rep.Started).
		Bool("stopped", rep.Stopped).
		Int64("idempotency_purged", purged).
		Msg("tick done")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	f, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	rep, err := seed.Apply(cmd.Context(), db, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "accounts: %d, plants created: %d, plants skipped: %d\n",
		rep.Users, rep.PlantsCreated, rep.PlantsSkipped)
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set; the API runs in demo mode")
	}
	tok, err := auth.IssueToken([]byte(cfg.Auth.JWTSecret), tokenUser, tokenRole, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
