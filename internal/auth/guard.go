package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider names an SSO provider as listed in the allowed auth providers.
type Provider string

const ProviderGoogle Provider = "GOOGLE"

// DisplayName returns the provider name as shown to users, e.g. Google.
func (p Provider) DisplayName() string {
	s := strings.ToLower(string(p))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// HTTPError is returned when a guard rejects a request.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// State travels through the provider and back to the callback.
type State struct {
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// Options are handed to the provider when authentication starts.
type Options struct {
	State State
}

// Guard protects the login route of one provider. It is active only while
// the provider is enabled.
type Guard struct {
	Provider Provider
	Enabled  func(Provider) bool
	OAuth    *oauth2.Config
}

// NewGoogleGuard returns a guard redirecting to Google's consent screen.
func NewGoogleGuard(clientID, clientSecret, callbackURL string, scopes []string, enabled func(Provider) bool) *Guard {
	return &Guard{
		Provider: ProviderGoogle,
		Enabled:  enabled,
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       scopes,
			Endpoint:     endpoints.Google,
		},
	}
}

// CanActivate rejects the request with 404 when the provider is disabled.
func (g *Guard) CanActivate(_ *http.Request) error {
	if g.Enabled == nil || !g.Enabled(g.Provider) {
		return &HTTPError{
			Status:  http.StatusNotFound,
			Message: g.Provider.DisplayName() + " auth is not enabled",
		}
	}
	return nil
}

// AuthenticateOptions forwards the redirect_uri query parameter in the state.
func (g *Guard) AuthenticateOptions(r *http.Request) Options {
	return Options{State: State{RedirectURI: r.URL.Query().Get("redirect_uri")}}
}

// Middleware applies CanActivate to every request.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.CanActivate(c.Request()); err != nil {
				var he *HTTPError
				if errors.As(err, &he) {
					return echo.NewHTTPError(he.Status, he.Message)
				}
				return err
			}
			return next(c)
		}
	}
}

// Redirect starts the authentication by redirecting to the provider.
func (g *Guard) Redirect(c echo.Context) error {
	opts := g.AuthenticateOptions(c.Request())
	state, err := EncodeState(opts.State)
	if err != nil {
		return err
	}
	slog.DebugContext(c.Request().Context(), "Redirecting to auth provider",
		"provider", g.Provider, "redirect_uri", opts.State.RedirectURI)
	return c.Redirect(http.StatusFound, g.OAuth.AuthCodeURL(state))
}

// Callback completes the authentication. The code is exchanged for a token
// and the user is sent back to the redirect_uri carried in the state.
func (g *Guard) Callback(c echo.Context) error {
	q := c.QueryParams()
	if reason := q.Get("error"); reason != "" {
		return echo.NewHTTPError(http.StatusUnauthorized, g.Provider.DisplayName()+" auth failed: "+reason)
	}
	st, err := DecodeState(q.Get("state"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	code := q.Get("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	ctx := c.Request().Context()
	if _, err := g.OAuth.Exchange(ctx, code); err != nil {
		slog.ErrorContext(ctx, "Failed to exchange authorization code", "provider", g.Provider, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to exchange authorization code")
	}

	target := st.RedirectURI
	if target == "" {
		target = "/"
	}
	slog.DebugContext(ctx, "Authenticated with auth provider", "provider", g.Provider, "redirect_uri", target)
	return c.Redirect(http.StatusFound, target)
}

// EncodeState encodes the state as base64url JSON.
func EncodeState(s State) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeState reverses EncodeState.
func DecodeState(s string) (State, error) {
	var st State
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return st, fmt.Errorf("failed to decode state: %w", err)
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, fmt.Errorf("failed to decode state: %w", err)
	}
	return st, nil
}
