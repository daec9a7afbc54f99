// File: app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"go-bank-ledger/config"
	"go-bank-ledger/db"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"
	"go-bank-ledger/repository"
	"go-bank-ledger/router"
	"go-bank-ledger/service"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

// App holds the wired layers of one ledger session.
type App struct {
	Service *service.AccountService
	Console *handler.Console
	Router  *router.Router
}

// New wires the store, the interactive handlers and the menu loop around repo.
func New(repo repository.IAccountRepository, opts service.Options, in io.Reader, out io.Writer) *App {
	accountService := service.NewAccountService(repo, opts)
	console := handler.NewConsole(in, out)
	accountHandler := handler.NewAccountHandler(accountService, console)

	return &App{
		Service: accountService,
		Console: console,
		Router:  router.NewRouter(accountHandler, console),
	}
}

// Start loads the persisted accounts and runs the menu loop until the operator
// exits. A failed load is reported and the session starts empty.
func (a *App) Start(ctx context.Context) error {
	if err := a.Service.Load(ctx); err != nil {
		logger.Log.WithError(err).Error("Failed to load accounts, starting with an empty store")
		a.Console.Println("Could not open the account file. Starting with no accounts.")
	}
	return a.Router.Serve(ctx)
}

func Run() {
	flags := config.NewFlagSet(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.Fatalf("Error parsing flags: %v", err)
	}
	configPath, _ := flags.GetString("config")

	if err := config.LoadConfig(configPath, flags); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Init()
	defer logger.Close()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo, err := newRepository(ctx)
	if err != nil {
		logger.Log.Fatalf("Error initializing %s storage: %v", config.AppConfig.Storage.Driver, err)
	}
	defer closeRepo()

	ledger := config.AppConfig.Ledger
	a := New(repo, service.Options{
		UniqueIDMin:   ledger.UniqueIDMin,
		UniqueIDMax:   ledger.UniqueIDMax,
		MaxIDAttempts: ledger.MaxIDAttempts,
	}, os.Stdin, os.Stdout)
	logger.Log.WithField("session_id", a.Router.SessionID()).Info("Ledger session starting")

	done := make(chan error, 1)
	go func() {
		done <- a.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			logger.Log.WithError(err).Error("Menu loop stopped")
		}
	case <-quit:
		logger.Log.Warn("Shutdown signal received. Saving accounts before exit...")
		cancel()

		saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer saveCancel()
		if err := a.Service.Save(saveCtx); err != nil {
			logger.Log.WithError(err).Error("Failed to save accounts on shutdown")
			fmt.Fprintln(os.Stdout, "\nCould not open the account file.")
		}
		fmt.Fprintln(os.Stdout, "\nExiting the program.")
	}

	logger.Log.Info("Ledger exited properly")
}

// newRepository builds the storage backend named by storage.driver. The
// returned func releases its connections.
func newRepository(ctx context.Context) (repository.IAccountRepository, func(), error) {
	switch config.AppConfig.Storage.Driver {
	case config.DriverPostgres:
		if err := db.Migrate(); err != nil {
			return nil, nil, err
		}
		database, err := db.Connect()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewAccountRepository(database), func() { database.Close() }, nil

	case config.DriverRedis:
		rdb, err := db.ConnectRedis(ctx)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisRepository(rdb, config.AppConfig.Redis.Key), func() { rdb.Close() }, nil

	default:
		path := config.AppConfig.Storage.File.Path
		logger.Log.WithField("path", path).Info("Using file storage")
		return repository.NewFileRepository(path), func() {}, nil
	}
}
