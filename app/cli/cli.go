package cli

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
)

// CLI is the command line interface of kangyang.
type CLI struct {
	kctx *kong.Context

	Init      Init      `kong:"cmd,help='Create the data directory and generate an encryption key.'"`
	KV        KV        `kong:"cmd,name='kv',help='Manage raw key-value entries.'"`
	Auth      Auth      `kong:"cmd,help='Manage the session tokens.'"`
	Settings  Settings  `kong:"cmd,help='Manage the user settings.'"`
	Cart      Cart      `kong:"cmd,help='Manage the grocery cart.'"`
	Topic     Topic     `kong:"cmd,help='Browse and follow community topics.'"`
	Community Community `kong:"cmd,help='Manage community interactions.'"`
	Caregiver Caregiver `kong:"cmd,help='Browse caregivers and their reviews.'"`
	Package   Package   `kong:"cmd,help='Browse service packages.'"`
	Check     Check     `kong:"cmd,help='Validate forms and compute health values.'"`
	Serve     Serve     `kong:"cmd,help='Start the local JSON API server.'"`
	Version   Version   `kong:"cmd,help='Output the app version and exit.'"`

	DataDir       string        `default:"${dataDir}" help:"Directory where app data is stored. Use ':memory:' to keep it in memory."`
	Backend       string        `enum:"badger,sqlite" default:"badger" help:"Storage backend. One of: ${enum}"`
	EncryptionKey string        `help:"Base58-encoded 32-byte key. If set, values of the secure namespace are encrypted."`
	EncryptStore  bool          `help:"Also enable Badger's encryption at rest using the encryption key."`
	LogLevel      slog.Level    `default:"INFO" help:"Set the app logging level."`
	MockDelay     time.Duration `default:"300ms" help:"Simulated latency of caregiver queries."`
}

// Setup parses the command-line arguments.
func (c *CLI) Setup(appCtx *actx.Context, name string, args []string, exit func(int)) error {
	parser, err := kong.New(c,
		kong.Name(name),
		kong.Description("Local data layer of the Kangyang elderly care app."),
		kong.UsageOnError(),
		kong.DefaultEnvars(strings.ToUpper(name)),
		kong.Resolvers(envResolver(appCtx.Env)),
		kong.Writers(appCtx.Stdout, appCtx.Stderr),
		kong.Exit(exit),
		kong.Vars{"dataDir": filepath.Join(xdg.DataHome, name)},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	c.kctx, err = parser.Parse(args)
	return err
}

// Command returns the top-level command name, e.g. "cart".
func (c *CLI) Command() string {
	name, _, _ := strings.Cut(c.kctx.Command(), " ")
	return name
}

// NeedsStore returns true if the selected command reads or writes app data.
func (c *CLI) NeedsStore() bool {
	switch c.Command() {
	case "init", "check", "version":
		return false
	}
	return true
}

// Execute runs the selected command.
func (c *CLI) Execute(appCtx *actx.Context) error {
	return c.kctx.Run(appCtx)
}

// subcommand returns the name of the selected subcommand, e.g. "add" for
// "cart add <product-id>".
func subcommand(kctx *kong.Context) string {
	parts := strings.Fields(kctx.Command())
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// envResolver resolves flag values from the app environment, so that it's
// possible to configure the app without touching the process environment.
func envResolver(env actx.Environment) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if env == nil {
			return nil, nil
		}
		for _, name := range flag.Envs {
			if v := env.Get(name); v != "" {
				return v, nil
			}
		}
		return nil, nil
	})
}
