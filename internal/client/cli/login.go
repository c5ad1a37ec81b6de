package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println(renderTitle("Login"))
	c.io.Println()

	var login string
	if len(args) > 0 {
		login = args[0]
	} else {
		var err error
		login, err = c.io.ReadInput("Username or email: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	session, err := c.sessions.Login(ctx, login, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println(renderSuccess("Login successful!"))
	c.io.Println(renderInfo("Username", session.Username))
	c.io.Println(renderInfo("Token expires", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339)))
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println(renderTitle("Logout"))

	if err := c.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println(renderSuccess("Logout successful!"))
	c.io.Println("Your local session has been deleted.")
	return nil
}
