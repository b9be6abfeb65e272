package config

import (
	"fmt"
	"net/url"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// minJWTSecretLen is the HS256 key length floor.
const minJWTSecretLen = 32

// ValidateClient checks the settings needed by the terminal client: a
// reachable store and an analysis provider.
func (c *Config) ValidateClient() error {
	if err := c.Store.validate(c.Database); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Analysis.validate(true); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// ValidateProbe checks the settings needed by the connectivity probe, which
// only talks to the analysis provider.
func (c *Config) ValidateProbe() error {
	if err := c.Analysis.validate(true); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// ValidateServer checks the settings needed by the analysis proxy server.
// The server must talk to an upstream provider directly and must be able to
// verify access tokens.
func (c *Config) ValidateServer() error {
	if err := c.Store.validate(c.Database); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Analysis.validate(false); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	return nil
}

// ValidateAuth checks the token signing settings.
func (c *Config) ValidateAuth() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// ValidateMigrations checks that migrations can run: they only apply to the
// postgres backend.
func (c *Config) ValidateMigrations() error {
	if c.Store.Backend != domain.StoreBackendPostgres {
		return fmt.Errorf("store: migrations require backend %q (got %q)", domain.StoreBackendPostgres, c.Store.Backend)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	return nil
}

func (s *StoreConfig) validate(db DatabaseConfig) error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	if s.Table == "" {
		return fmt.Errorf("table is required")
	}

	switch s.Backend {
	case domain.StoreBackendPostgres:
		if db.DSN == "" {
			return fmt.Errorf("database.dsn is required for backend %q", s.Backend)
		}
		if db.MinConns > db.MaxConns {
			return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", db.MinConns, db.MaxConns)
		}
	case domain.StoreBackendSupabase:
		if s.SupabaseURL == "" || s.SupabaseKey == "" {
			return fmt.Errorf("supabase_url and supabase_key are required for backend %q", s.Backend)
		}
		if _, err := url.ParseRequestURI(s.SupabaseURL); err != nil {
			return fmt.Errorf("supabase_url: %w", err)
		}
	}
	return nil
}

func (a *AnalysisConfig) validate(allowProxy bool) error {
	if !a.Provider.IsValid() {
		return fmt.Errorf("unknown provider %q", a.Provider)
	}
	if a.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", a.MaxTokens)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}

	if a.Provider == domain.AnalysisProviderProxy {
		if !allowProxy {
			return fmt.Errorf("provider %q cannot be used by the proxy server itself", a.Provider)
		}
		if a.ProxyURL == "" || a.ProxyToken == "" {
			return fmt.Errorf("proxy_url and proxy_token are required for provider %q", a.Provider)
		}
		if _, err := url.ParseRequestURI(a.ProxyURL); err != nil {
			return fmt.Errorf("proxy_url: %w", err)
		}
		return nil
	}

	if a.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %q", a.Provider)
	}
	if a.BaseURL != "" {
		if _, err := url.ParseRequestURI(a.BaseURL); err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
	}
	return nil
}

func (a *AuthConfig) validate() error {
	if len(a.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("jwt_secret must be at least %d characters (got %d)", minJWTSecretLen, len(a.JWTSecret))
	}
	if a.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be > 0 (got %v)", a.TokenTTL)
	}
	return nil
}
