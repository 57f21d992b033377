package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/store"
)

// Option is a function that allows configuring the application.
type Option func(*App)

// WithContext sets the context used by the application. Long-running commands
// stop when it's done.
func WithContext(ctx context.Context) Option {
	return func(app *App) {
		app.ctx.Ctx = ctx
	}
}

// WithEnv sets the process environment used by the application.
func WithEnv(env actx.Environment) Option {
	return func(app *App) {
		app.ctx.Env = env
	}
}

// WithExit sets the function that stops the application.
func WithExit(fn func(int)) Option {
	return func(app *App) {
		app.Exit = fn
	}
}

// WithFDs sets the file descriptors used by the application.
func WithFDs(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(app *App) {
		app.ctx.Stdin = stdin
		app.ctx.Stdout = stdout
		app.ctx.Stderr = stderr
	}
}

// WithFS sets the filesystem used by the application.
func WithFS(fs vfs.FileSystem) Option {
	return func(app *App) {
		app.ctx.FS = fs
	}
}

// WithLogger initializes the logger used by the application. It writes to
// stderr, so WithFDs must be applied first. The level is set by the
// --log-level option.
func WithLogger(isStdoutTTY, isStderrTTY bool) Option {
	return func(app *App) {
		logger := slog.New(
			tint.NewHandler(app.ctx.Stderr, &tint.Options{
				Level:      app.logLevel,
				NoColor:    !isStderrTTY,
				TimeFormat: "2006-01-02 15:04:05.000",
			}),
		)
		app.ctx.Logger = logger
		slog.SetDefault(logger)
	}
}

// WithStore sets the key-value store used by the application, instead of
// opening the one configured on the command line. The store is not closed by
// the application.
func WithStore(s store.Store) Option {
	return func(app *App) {
		app.ctx.Store = s
	}
}

// WithReviews sets the repository caregiver reviews are kept in.
func WithReviews(r catalog.ReviewRepository) Option {
	return func(app *App) {
		app.ctx.Reviews = r
	}
}

// WithClock sets the function used to get the current time.
func WithClock(now func() time.Time) Option {
	return func(app *App) {
		app.ctx.Now = now
	}
}

// WithIDGenerator sets the function used to generate review IDs.
func WithIDGenerator(fn func() string) Option {
	return func(app *App) {
		app.ctx.UUIDGen = fn
	}
}
