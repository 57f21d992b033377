package cli

import (
	"fmt"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/web/server"
)

// Serve starts the local JSON API server.
type Serve struct {
	Address string `help:"[host]:port to listen on" default:"127.0.0.1:2020"`
}

// Run the serve command. The server is stopped when the app context is done.
func (s *Serve) Run(appCtx *actx.Context) error {
	srv := server.New(appCtx, s.Address)
	return srv.ListenAndServe(appCtx.Ctx)
}

// Version prints the app version.
type Version struct{}

// Run the version command.
func (c *Version) Run(appCtx *actx.Context) error {
	_, err := fmt.Fprintln(appCtx.Stdout, appCtx.Version)
	return err
}
