package router

import (
	"context"
	"errors"
	"io"

	"go-bank-ledger/common"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Route binds a menu number to an operation. Exit routes end the menu loop
// after they run.
type Route struct {
	Key     int
	Label   string
	Handler handler.HandlerFunc
	Exit    bool
}

// Router is the menu loop: show the menu, read a selection, dispatch, repeat.
type Router struct {
	console   *handler.Console
	routes    []Route
	sessionID string
}

func NewRouter(accountHandler *handler.AccountHandler, console *handler.Console) *Router {
	r := &Router{console: console, sessionID: uuid.NewString()}

	r.Handle(1, "Open account", accountHandler.OpenAccount)
	r.Handle(2, "Deposit", accountHandler.Deposit)
	r.Handle(3, "Withdraw", accountHandler.Withdraw)
	r.Handle(4, "Show all accounts", accountHandler.ListAccounts)
	r.Handle(5, "Delete account", accountHandler.DeleteAccount)
	r.HandleExit(9, "Exit", accountHandler.Exit)

	return r
}

func (r *Router) Handle(key int, label string, h handler.HandlerFunc) {
	r.routes = append(r.routes, Route{
		Key:     key,
		Label:   label,
		Handler: handler.ErrorHandlingMiddleware(r.console.Out(), h),
	})
}

func (r *Router) HandleExit(key int, label string, h handler.HandlerFunc) {
	r.Handle(key, label, h)
	r.routes[len(r.routes)-1].Exit = true
}

func (r *Router) SessionID() string {
	return r.sessionID
}

// Serve runs the menu loop until an exit route has run. Closed input behaves
// like selecting the exit route.
func (r *Router) Serve(ctx context.Context) error {
	log := logger.Log.WithField("session_id", r.sessionID)
	log.Info("Menu loop started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.showMenu()
		choice, err := r.console.ReadInt("Select: ")
		if errors.Is(err, common.ErrInvalidInput) {
			log.WithError(err).Debug("Invalid menu selection")
			r.console.Println("Invalid selection. Please try again.")
			continue
		}
		if err != nil {
			log.Info("Input closed, exiting")
			r.console.Println()
			r.exit(ctx)
			return nil
		}

		route, ok := r.lookup(choice)
		if !ok {
			log.WithField("selection", choice).Debug("Unknown menu selection")
			r.console.Println("Invalid selection. Please try again.")
			continue
		}

		opLog := log.WithFields(logrus.Fields{
			"operation_id": uuid.NewString(),
			"selection":    route.Key,
			"operation":    route.Label,
		})
		opLog.Info("Dispatching menu operation")

		appErr := route.Handler(ctx)
		if route.Exit {
			opLog.Info("Menu loop finished")
			return nil
		}
		if appErr != nil && errors.Is(appErr, io.EOF) {
			opLog.Info("Input closed during operation, exiting")
			r.console.Println()
			r.exit(ctx)
			return nil
		}
	}
}

func (r *Router) showMenu() {
	r.console.Println("----Menu----")
	for _, route := range r.routes {
		r.console.Printf("%d. %s\n", route.Key, route.Label)
	}
}

func (r *Router) lookup(key int) (Route, bool) {
	for _, route := range r.routes {
		if route.Key == key {
			return route, true
		}
	}
	return Route{}, false
}

func (r *Router) exit(ctx context.Context) {
	for _, route := range r.routes {
		if route.Exit {
			route.Handler(ctx)
			return
		}
	}
}
