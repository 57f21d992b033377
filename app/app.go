package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.hackfix.me/kangyang/app/cli"
	actx "go.hackfix.me/kangyang/app/context"
	aerrors "go.hackfix.me/kangyang/app/errors"
	"go.hackfix.me/kangyang/crypto"
	"go.hackfix.me/kangyang/store"
	"go.hackfix.me/kangyang/store/badger"
	"go.hackfix.me/kangyang/store/sqlite"
)

// App is the application.
type App struct {
	name     string
	ctx      *actx.Context
	logLevel *slog.LevelVar

	Exit func(int)
}

// New initializes a new application.
func New(name string, opts ...Option) (*App, error) {
	defaultCtx := &actx.Context{
		Ctx:    context.Background(),
		Logger: slog.Default(),
	}
	app := &App{
		name:     name,
		ctx:      defaultCtx,
		logLevel: &slog.LevelVar{},
		Exit:     func(int) {},
	}

	for _, opt := range opts {
		opt(app)
	}

	vi, err := actx.GetVersion()
	if err != nil {
		return nil, err
	}
	app.ctx.Version = vi.String()

	return app, nil
}

// Run parses the command-line arguments and runs the selected command. If no
// store was provided when the app was created, the store configured by the
// arguments is opened for the duration of the command.
func (app *App) Run(args []string) error {
	c := &cli.CLI{}
	if err := c.Setup(app.ctx, app.name, args, app.Exit); err != nil {
		return err
	}

	app.logLevel.Set(c.LogLevel)

	encKey, err := decodeEncryptionKey(c.EncryptionKey)
	if err != nil {
		return err
	}

	if c.NeedsStore() {
		if app.ctx.Store == nil {
			s, err := app.openStore(c, encKey)
			if err != nil {
				return err
			}
			app.ctx.Store = s
			defer func() {
				if err := s.Close(); err != nil {
					app.ctx.Logger.Warn("failed closing store", "error", err)
				}
				app.ctx.Store = nil
			}()
		}

		app.ctx.InitServices(actx.ServiceConfig{
			EncryptionKey: encKey,
			MockDelay:     c.MockDelay,
		})
	}

	app.ctx.Logger.Debug("running command", "command", c.Command())

	return c.Execute(app.ctx)
}

// FatalIfErrorf terminates the application with an error message if err != nil.
func (app *App) FatalIfErrorf(err error, args ...any) {
	if err != nil {
		args = append(args, aerrors.Attrs(err)...)
		app.ctx.Logger.Error(err.Error(), args...)
		app.Exit(1)
	}
}

func (app *App) openStore(c *cli.CLI, encKey *[crypto.KeySize]byte) (store.Store, error) {
	dir := c.DataDir
	if dir != ":memory:" {
		if err := app.ctx.FS.MkdirAll(dir, 0o700); err != nil {
			return nil, aerrors.NewRuntimeError(
				fmt.Sprintf("failed creating data directory '%s'", dir), err, "")
		}
	}

	var (
		s   store.Store
		err error
	)
	switch c.Backend {
	case "sqlite":
		path := dir
		if dir != ":memory:" {
			path = filepath.Join(dir, "kangyang.db")
		}
		s, err = sqlite.Open(app.ctx.Ctx, path, sqlite.WithLogger(app.ctx.Logger))
	default:
		path := dir
		if dir != ":memory:" {
			path = filepath.Join(dir, "store")
		}
		var opts []badger.Option
		if c.EncryptStore {
			if encKey == nil {
				return nil, aerrors.NewRuntimeError("store encryption requires an encryption key", nil,
					"Generate a key with the 'init' command.")
			}
			opts = append(opts, badger.WithEncryptionKey(encKey[:]))
		}
		s, err = badger.Open(path, opts...)
	}
	if err != nil {
		return nil, aerrors.NewRuntimeError("failed opening store", err, "")
	}
	app.ctx.Logger.Debug("opened store", "backend", c.Backend, "path", dir)

	return s, nil
}

func decodeEncryptionKey(keyEnc string) (*[crypto.KeySize]byte, error) {
	if keyEnc == "" {
		return nil, nil
	}

	key, err := crypto.DecodeKey(keyEnc)
	if err != nil {
		return nil, aerrors.NewRuntimeError("invalid encryption key", err,
			"Generate a key with the 'init' command.")
	}

	return key, nil
}
