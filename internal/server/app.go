// Package server initializes and runs the auth application: it loads
// configuration, connects to the database, runs migrations, wires the token
// issuer, mail dispatcher and auth service together, and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/murof-net/auth/internal/logging"
	"github.com/murof-net/auth/internal/server/auth"
	"github.com/murof-net/auth/internal/server/config"
	"github.com/murof-net/auth/internal/server/httpapi"
	"github.com/murof-net/auth/internal/server/mail"
	"github.com/murof-net/auth/internal/server/repositories/repomanager"
	"github.com/murof-net/auth/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repos       repomanager.RepositoryManager
	authService *services.AuthService
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()

	issuer, err := auth.NewIssuer([]byte(cfg.SecretKey), cfg.SigningAlgorithm, auth.Lifetimes{
		Access:            cfg.AccessTokenValidityDuration,
		Refresh:           cfg.RefreshTokenValidityDuration,
		EmailVerification: cfg.VerificationTokenValidityDuration,
		PasswordReset:     cfg.ResetTokenValidityDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	dispatcher, err := mail.NewDispatcher(mail.Config{
		Provider: cfg.MailProvider,
		From:     cfg.MailFrom,
		SMTP: mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		},
		SendGrid: mail.SendGridConfig{Key: cfg.SendGridKey},
		Mailgun:  mail.MailgunConfig{Key: cfg.MailgunKey, Domain: cfg.MailgunDomain},
	})
	if err != nil {
		return nil, fmt.Errorf("mail dispatcher init error: %w", err)
	}

	authService := services.NewAuthService(db, repos, issuer, dispatcher, logger, cfg)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repos:       repos,
		authService: authService,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	return nil
}
