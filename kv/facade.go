package kv

// Persisted keys of the facade.
const (
	AuthTokenKey    = "@kangyang_auth_token"
	RefreshTokenKey = "@kangyang_refresh_token"
	UserSettingsKey = "@kangyang_user_settings"
)

// UserSettings are the app preferences of the local user.
type UserSettings struct {
	Language         string  `json:"language,omitempty"`
	FontScale        float64 `json:"fontScale,omitempty"`
	Theme            string  `json:"theme,omitempty"`
	Notifications    bool    `json:"notifications"`
	EmergencyContact string  `json:"emergencyContact,omitempty"`
}

// Facade gives named access to the values the app keeps about the session and
// the user. Tokens are kept in the secure namespace, everything else in the
// general one.
type Facade struct {
	general *Namespace
	secure  *Namespace
}

// NewFacade returns a Facade over the given namespaces.
func NewFacade(general, secure *Namespace) *Facade {
	return &Facade{general: general, secure: secure}
}

func (f *Facade) SetAuthToken(token string) { f.secure.Set(AuthTokenKey, token) }

func (f *Facade) AuthToken() (string, bool) { return f.secure.GetString(AuthTokenKey) }

func (f *Facade) RemoveAuthToken() { f.secure.Delete(AuthTokenKey) }

func (f *Facade) SetRefreshToken(token string) { f.secure.Set(RefreshTokenKey, token) }

func (f *Facade) RefreshToken() (string, bool) { return f.secure.GetString(RefreshTokenKey) }

func (f *Facade) RemoveRefreshToken() { f.secure.Delete(RefreshTokenKey) }

// ClearSession removes both session tokens.
func (f *Facade) ClearSession() {
	f.RemoveAuthToken()
	f.RemoveRefreshToken()
}

// SetUserSettings stores the user settings.
func (f *Facade) SetUserSettings(s UserSettings) {
	f.general.SetObject(UserSettingsKey, s)
}

// UserSettings returns the stored user settings, or false if there are none
// or they can't be read.
func (f *Facade) UserSettings() (*UserSettings, bool) {
	var s UserSettings
	if !f.general.GetObject(UserSettingsKey, &s) {
		return nil, false
	}

	return &s, true
}
