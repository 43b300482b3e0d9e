package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tandemledger/tandem/internal/app"
	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/models"
	"github.com/tandemledger/tandem/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to tandem.toml (default: TANDEM_CONFIG, then binary directory)")
	showVersion := flag.Bool("version", false, "print version and exit")
	addUser := flag.String("adduser", "", "create or update a login account and exit (reads TANDEM_PASSWORD)")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(context.Background(), *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	if *addUser != "" {
		if err := provisionUser(a, *addUser, os.Getenv("TANDEM_PASSWORD")); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
			a.Close()
			os.Exit(1)
		}
		fmt.Printf("Account %q saved\n", *addUser)
		a.Close()
		return
	}

	srv := server.NewServer(a)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Msg("Server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	a.Logger.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	a.Close()
	a.Logger.Info().Msg("Server stopped")
}

// provisionUser hashes the password and upserts the login account.
func provisionUser(a *app.App, username, password string) error {
	if password == "" {
		return fmt.Errorf("TANDEM_PASSWORD is not set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return a.Storage.InternalStore().SaveUser(context.Background(), &models.UserAccount{
		Username:     username,
		PasswordHash: string(hash),
	})
}
