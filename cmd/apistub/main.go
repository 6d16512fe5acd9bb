package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ianschenck/envflag"

	"github.com/Jefersonlopezr/foodierank/internal/logger"
	"github.com/Jefersonlopezr/foodierank/internal/stubserver"
)

func main() {
	var (
		addr          = envflag.String("ADDR", "0.0.0.0:3000", "!")
		secretKey     = envflag.String("SECRET_KEY", "dev-secret-key", "!")
		env           = envflag.String("ENV", "dev", "!")
		tokenTTL      = envflag.Duration("TOKEN_TTL", 24*time.Hour, "!")
		adminEmail    = envflag.String("ADMIN_EMAIL", "admin@foodierank.local", "!")
		adminPassword = envflag.String("ADMIN_PASSWORD", "admin-password", "!")
	)
	envflag.Parse()

	// Инициализация логгера
	logger.Init(*env)
	defer logger.Close()

	log := logger.NewLogger()

	server := stubserver.NewServer(*secretKey, *tokenTTL, log)
	if err := server.SeedAdmin("admin", *adminEmail, *adminPassword); err != nil {
		log.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	// Настраиваем обработку сигналов для грациозного завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	log.Info("API stub is listening", "address", *addr, "admin_email", *adminEmail)

	errCh := make(chan error, 1)
	go func() {
		errCh <- stubserver.Start(*addr, server.Router())
	}()

	select {
	case <-signalCh:
		log.Info("Shutting down gracefully...")
	case err := <-errCh:
		log.Error("Server error", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
