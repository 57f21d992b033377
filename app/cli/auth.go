package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/kv"
)

// The Auth command manages the session tokens kept in the secure namespace.
type Auth struct {
	Token struct {
		Value string `arg:"" optional:"" help:"The new auth token. If omitted, the stored token is printed."`
	} `kong:"cmd,help='Print or set the auth token.'"`
	Refresh struct {
		Value string `arg:"" optional:"" help:"The new refresh token. If omitted, the stored token is printed."`
	} `kong:"cmd,help='Print or set the refresh token.'"`
	Logout struct{} `kong:"cmd,help='Remove both session tokens.'"`
}

// Run the auth command.
func (c *Auth) Run(kctx *kong.Context, appCtx *actx.Context) error {
	s := appCtx.Session

	switch subcommand(kctx) {
	case "token":
		if c.Token.Value != "" {
			s.SetAuthToken(c.Token.Value)
			return nil
		}
		return printToken(appCtx, "auth", s.AuthToken)
	case "refresh":
		if c.Refresh.Value != "" {
			s.SetRefreshToken(c.Refresh.Value)
			return nil
		}
		return printToken(appCtx, "refresh", s.RefreshToken)
	case "logout":
		s.ClearSession()
	}

	return nil
}

func printToken(appCtx *actx.Context, kind string, get func() (string, bool)) error {
	token, ok := get()
	if !ok {
		return fmt.Errorf("no %s token is stored", kind)
	}
	fmt.Fprintln(appCtx.Stdout, token)
	return nil
}

// The Settings command manages the user settings.
type Settings struct {
	Get struct{} `kong:"cmd,help='Print the user settings as JSON.'"`
	Set struct {
		Language         string  `help:"Interface language, e.g. zh-CN."`
		FontScale        float64 `help:"Font scale factor."`
		Theme            string  `help:"Color theme."`
		Notifications    string  `help:"Enable notifications (on|off)."`
		EmergencyContact string  `help:"Phone number of the emergency contact."`
	} `kong:"cmd,help='Change the user settings. Omitted options keep their value.'"`
}

// Run the settings command.
func (c *Settings) Run(kctx *kong.Context, appCtx *actx.Context) error {
	s := appCtx.Session

	switch subcommand(kctx) {
	case "get":
		settings, ok := s.UserSettings()
		if !ok {
			return errors.New("no user settings are stored")
		}
		return printJSON(appCtx, settings)
	case "set":
		settings, ok := s.UserSettings()
		if !ok {
			settings = &kv.UserSettings{}
		}
		if err := c.apply(settings); err != nil {
			return err
		}
		s.SetUserSettings(*settings)
	}

	return nil
}

func (c *Settings) apply(s *kv.UserSettings) error {
	if c.Set.Language != "" {
		s.Language = c.Set.Language
	}
	if c.Set.FontScale != 0 {
		s.FontScale = c.Set.FontScale
	}
	if c.Set.Theme != "" {
		s.Theme = c.Set.Theme
	}
	if c.Set.EmergencyContact != "" {
		s.EmergencyContact = c.Set.EmergencyContact
	}
	switch c.Set.Notifications {
	case "":
	case "on":
		s.Notifications = true
	case "off":
		s.Notifications = false
	default:
		on, err := strconv.ParseBool(c.Set.Notifications)
		if err != nil {
			return fmt.Errorf("invalid notifications value '%s'", c.Set.Notifications)
		}
		s.Notifications = on
	}

	return nil
}

func printJSON(appCtx *actx.Context, v any) error {
	enc := json.NewEncoder(appCtx.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
