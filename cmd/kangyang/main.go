package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"go.hackfix.me/kangyang/app"
	actx "go.hackfix.me/kangyang/app/context"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	isStdoutTTY := isatty.IsTerminal(os.Stdout.Fd())
	isStderrTTY := isatty.IsTerminal(os.Stderr.Fd())

	a, err := app.New("kangyang",
		app.WithContext(ctx),
		app.WithExit(func(code int) {
			cancel()
			os.Exit(code)
		}),
		app.WithFDs(os.Stdin, colorable.NewColorableStdout(), colorable.NewColorableStderr()),
		app.WithFS(osfs.New()),
		app.WithEnv(osEnv{}),
		app.WithLogger(isStdoutTTY, isStderrTTY),
	)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	a.FatalIfErrorf(a.Run(os.Args[1:]))
}

type osEnv struct{}

var _ actx.Environment = &osEnv{}

func (e osEnv) Get(key string) string {
	return os.Getenv(key)
}

func (e osEnv) Set(key, val string) error {
	return os.Setenv(key, val)
}
