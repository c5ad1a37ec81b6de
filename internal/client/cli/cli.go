package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iudanet/gophsocial/internal/client/api"
	"github.com/iudanet/gophsocial/internal/client/auth"
	"github.com/iudanet/gophsocial/internal/client/iocli"
)

// ErrUnknownCommand команда не распознана
var ErrUnknownCommand = errors.New("unknown command")

type Cli struct {
	io        iocli.IO
	apiClient *api.Client
	sessions  auth.Sessions
}

func New(stdio iocli.IO, apiClient *api.Client, sessions auth.Sessions) *Cli {
	return &Cli{
		io:        stdio,
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Run выполняет команду; args не включают имя команды
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "post":
		return c.runPost(ctx, args)
	case "feed":
		return c.runFeed(ctx, args)
	case "follow":
		return c.runFollow(ctx, args)
	case "unfollow":
		return c.runUnfollow(ctx, args)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// token возвращает токен действующей сессии
func (c *Cli) token(ctx context.Context) (string, error) {
	session, err := c.sessions.Session(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func PrintUsage(w io.Writer) {
	lines := []string{
		"GophSocial Client",
		"",
		"Usage:",
		"  gophsocial [OPTIONS] COMMAND [ARGS]",
		"",
		"Options:",
		"  -version                     Show version information",
		"  -server URL                  Server URL (default: http://localhost:8080)",
		"  -db PATH                     Path to local session database (default: gophsocial-client.db)",
		"",
		"Commands:",
		"  register                     Register new user",
		"  login [username|email]       Login to server",
		"  logout                       Delete local session",
		"  status                       Show authentication status",
		"  whoami                       Show your profile",
		"  post <text>                  Publish a post",
		"  feed [-page N] [-size N]     Show posts of users you follow",
		"  follow <username>            Follow a user",
		"  unfollow <username>          Stop following a user",
		"  help                         Show this message",
		"",
		"Examples:",
		"  gophsocial register",
		"  gophsocial login alice",
		"  gophsocial post \"hello world\"",
		"  gophsocial follow bob",
		"  gophsocial feed -page 0 -size 10",
		"  gophsocial -server https://example.com login",
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}
