package cli

import (
	"context"
	"fmt"
	"time"

	pkgapi "github.com/iudanet/gophsocial/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println(renderTitle("Registration"))
	c.io.Println()

	var req pkgapi.RegisterRequest
	prompts := []struct {
		dst    *string
		prompt string
	}{
		{&req.Username, "Username: "},
		{&req.Email, "Email: "},
		{&req.FirstName, "First name: "},
		{&req.LastName, "Last name: "},
	}
	for _, p := range prompts {
		v, err := c.io.ReadInput(p.prompt)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		*p.dst = v
	}

	password, err := c.io.ReadPassword("Password (min 6 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	req.Password = password

	session, err := c.sessions.Register(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println(renderSuccess("Registration successful!"))
	c.io.Println(renderInfo("User ID", session.UserID))
	c.io.Println(renderInfo("Username", session.Username))
	c.io.Println(renderInfo("Token expires", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339)))
	c.io.Println()
	c.io.Println("You are logged in.")
	return nil
}
