package app

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/heartmarshall/mental-clarity/internal/auth"
	"github.com/heartmarshall/mental-clarity/internal/config"
)

// RunToken mints a proxy access token for clientID and writes it to w.
// An empty clientID gets a random one.
func RunToken(cfg *config.Config, clientID string, w io.Writer) error {
	if err := cfg.ValidateAuth(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if clientID == "" {
		clientID = uuid.NewString()
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL).
		GenerateClientToken(clientID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
