package ui

import (
	"context"
	"sync"

	"user-records/internal/model"

	"go.uber.org/zap"
)

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// App 持有 State，並執行需要網路的 action
type App struct {
	mu     sync.Mutex
	state  State
	api    API
	notify Notifier
	log    *zap.Logger
}

func NewApp(api API, notify Notifier, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{api: api, notify: notify, log: log}
}

// State returns a snapshot of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *App) apply(act Action) {
	a.mu.Lock()
	a.state = Reduce(a.state, act)
	a.mu.Unlock()
}

// Load 取得完整清單並取代目前的 Users
func (a *App) Load(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		a.log.Error("fetch users", zap.Error(err))
		return err
	}
	a.apply(Loaded{Users: users})
	return nil
}

// Dispatch applies act. Pure actions go straight to the reducer; Submit
// and Delete call the API first. Validation failures are shown through
// the Notifier and returned; server failures are logged and returned,
// leaving the state as it was.
func (a *App) Dispatch(ctx context.Context, act Action) error {
	switch act := act.(type) {
	case Submit:
		return a.submit(ctx)
	case Delete:
		return a.delete(ctx, act.ID)
	default:
		a.apply(act)
		return nil
	}
}

func (a *App) submit(ctx context.Context) error {
	s := a.State()
	if err := Validate(s.Form); err != nil {
		if a.notify != nil {
			a.notify.Alert(err.Error())
		}
		return err
	}

	var (
		u   *model.User
		err error
	)
	if s.Selected == nil {
		u, err = a.api.CreateUser(ctx, s.Form)
	} else {
		u, err = a.api.UpdateUser(ctx, s.Selected.ID, s.Form, s.Selected.ProfileImage)
	}
	if err != nil {
		a.log.Error("save user", zap.String("mode", s.Mode().String()), zap.Error(err))
		return err
	}
	a.apply(Saved{User: *u})

	return a.Load(ctx)
}

func (a *App) delete(ctx context.Context, id int) error {
	if err := a.api.DeleteUser(ctx, id); err != nil {
		a.log.Error("delete user", zap.Int("id", id), zap.Error(err))
		return err
	}
	a.apply(Removed{ID: id})
	return nil
}
