package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes all environment variables, e.g. EXAMPLE_GEN_LISTEN.
const EnvPrefix = "EXAMPLE_GEN"

const (
	KeyListen               = "listen"
	KeyAllowedAuthProviders = "allowed-auth-providers"
	KeyGoogleClientID       = "google-client-id"
	KeyGoogleClientSecret   = "google-client-secret"
	KeyGoogleCallbackURL    = "google-callback-url"
	KeyGoogleScopes         = "google-scope"
	KeyMaxBodyBytes         = "max-body-bytes"
	KeyDebug                = "debug"
)

// Config of the example server.
type Config struct {
	Listen               string
	AllowedAuthProviders []string
	Google               Google
	MaxBodyBytes         int64
	Debug                bool
}

// Google holds the OAuth2 client of the Google SSO provider.
type Google struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Scopes       []string
}

// AddFlags registers the configuration flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(KeyListen, ":8080", "The address to listen on")
	flags.String(KeyAllowedAuthProviders, "", "Comma separated list of enabled auth providers (e.g. GOOGLE)")
	flags.String(KeyGoogleClientID, "", "The OAuth2 client id of the Google provider")
	flags.String(KeyGoogleClientSecret, "", "The OAuth2 client secret of the Google provider")
	flags.String(KeyGoogleCallbackURL, "", "The OAuth2 callback url of the Google provider")
	flags.StringSlice(KeyGoogleScopes, []string{"email", "profile"}, "The OAuth2 scopes requested from Google")
	flags.Int64(KeyMaxBodyBytes, 5<<20, "The maximum accepted request body size")
	flags.Bool(KeyDebug, false, "Enable debug logging")
}

// New returns a viper instance bound to flags and to the environment.
func New(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load reads the configuration from v.
func Load(v *viper.Viper) Config {
	return Config{
		Listen:               v.GetString(KeyListen),
		AllowedAuthProviders: splitList(v.GetString(KeyAllowedAuthProviders)),
		Google: Google{
			ClientID:     v.GetString(KeyGoogleClientID),
			ClientSecret: v.GetString(KeyGoogleClientSecret),
			CallbackURL:  v.GetString(KeyGoogleCallbackURL),
			Scopes:       splitList(v.GetStringSlice(KeyGoogleScopes)...),
		},
		MaxBodyBytes: v.GetInt64(KeyMaxBodyBytes),
		Debug:        v.GetBool(KeyDebug),
	}
}

// ProviderEnabled reports whether the provider is one of the allowed auth providers.
func (c Config) ProviderEnabled(provider string) bool {
	for _, p := range c.AllowedAuthProviders {
		if strings.EqualFold(p, provider) {
			return true
		}
	}
	return false
}

// splitList splits comma separated entries. Slice values from the
// environment arrive unsplit or split on whitespace only.
func splitList(values ...string) []string {
	var out []string
	for _, s := range values {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
