package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/config"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
	"github.com/Jefersonlopezr/foodierank/internal/session"
)

func main() {
	// Загрузка конфигурации
	c, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	logger.Init(c.Service.Env)
	defer logger.Close()

	log := logger.NewLogger()

	// Контекст отменяется по сигналу остановки
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, c)
	if err != nil {
		log.Error("Failed to open session store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ui := newTerminalUI(os.Stdout)

	// Менеджер сессии и API клиент ссылаются друг на друга,
	// поэтому привязываются после создания обоих
	manager := session.NewManager(store, ui, ui, c.Session.SessionTTL(), log)
	client := api.NewClient(c.ResolveBaseURL(), c.API.RequestTimeout(), c.API.RetryAttempts, log)
	client.BindSession(manager)
	manager.BindAuthAPI(client)

	app := &app{
		cfg:     c,
		log:     log,
		client:  client,
		session: manager,
		store:   store,
		ui:      ui,
	}

	command := "help"
	args := []string{}
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	if err := app.run(ctx, command, args); err != nil {
		ui.Notify(session.LevelError, describeError(err))
		os.Exit(1)
	}
}

// openStore выбирает бекенд хранилища сессии по конфигурации
func openStore(ctx context.Context, c *config.AppConfig) (session.Store, error) {
	switch c.Session.Backend {
	case "redis":
		return session.NewRedisStore(ctx, c.Session.RedisURL, c.Session.SessionTTL())
	case "memory":
		return session.NewMemStore(), nil
	default:
		path, err := c.Session.StorePath()
		if err != nil {
			return nil, err
		}
		return session.NewFileStore(path)
	}
}

// describeError превращает ошибку API в сообщение для пользователя
func describeError(err error) string {
	switch {
	case api.IsExpiredSession(err):
		return "Session expired, please log in again"
	case api.IsNetworkError(err):
		return fmt.Sprintf("Cannot reach the server: %v", err)
	default:
		return err.Error()
	}
}
