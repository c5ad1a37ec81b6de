package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophsocial/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println(renderTitle("Authentication Status"))
	c.io.Println()

	st, err := c.sessions.Status(ctx)
	switch {
	case errors.Is(err, auth.ErrNotLoggedIn):
		c.io.Println(renderInfo("Status", "Not authenticated"))
		c.io.Println()
		c.io.Println("Run 'gophsocial login' to authenticate.")
		return nil
	case errors.Is(err, auth.ErrSessionExpired):
		c.io.Println(renderInfo("Status", "Session expired"))
		c.io.Println(renderWarning("Token has expired. Please login again."))
		return nil
	case err != nil:
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	expiresAt := time.Unix(st.Session.ExpiresAt, 0)

	c.io.Println(renderInfo("Status", "Authenticated"))
	c.io.Println(renderInfo("Username", st.Session.Username))
	c.io.Println(renderInfo("Server", st.Session.ServerURL))
	c.io.Println(renderInfo("Token expires", expiresAt.Format(time.RFC3339)))
	c.io.Println(renderInfo("Time remaining", time.Until(expiresAt).Round(time.Second).String()))

	switch {
	case st.Offline:
		c.io.Println(renderWarning("Server unreachable, token was not checked."))
	case !st.Valid:
		c.io.Println(renderWarning("Server rejected the token. Please login again."))
	default:
		c.io.Println(renderSuccess("Token accepted by server"))
	}
	return nil
}
