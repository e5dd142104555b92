package session

// TokenProvider supplies the credential sent as the auth-token header.
// Components receive this capability explicitly instead of reading
// ambient storage.
type TokenProvider interface {
	Token() string
}

// Session carries the per-user state the screens used to keep in
// localStorage: the auth token and the dark-theme flag. Persistence of
// either is the caller's problem.
type Session struct {
	AuthToken string
	DarkTheme bool
}

func New(token string) *Session {
	return &Session{AuthToken: token}
}

func (s *Session) Token() string { return s.AuthToken }

func (s *Session) ToggleTheme() bool {
	s.DarkTheme = !s.DarkTheme
	return s.DarkTheme
}

// StaticToken is a TokenProvider for tests and one-shot tools.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
