package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/validation"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	me, err := c.apiClient.Me(ctx, token)
	if err != nil {
		return err
	}

	c.io.Println(renderTitle("Profile"))
	c.io.Println(renderInfo("ID", me.ID))
	c.io.Println(renderInfo("Username", me.Username))
	c.io.Println(renderInfo("Name", strings.TrimSpace(me.FirstName+" "+me.LastName)))
	c.io.Println(renderInfo("Email", me.Email))
	if me.Bio != "" {
		c.io.Println(renderInfo("Bio", me.Bio))
	}
	return nil
}

func (c *Cli) runPost(ctx context.Context, args []string) error {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		var err error
		content, err = c.io.ReadInput("Post: ")
		if err != nil {
			return fmt.Errorf("failed to read post: %w", err)
		}
	}
	if content == "" {
		return fmt.Errorf("post content cannot be empty")
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	post, err := c.apiClient.CreatePost(ctx, token, content)
	if err != nil {
		return err
	}

	c.io.Println(renderSuccess("Post published"))
	c.io.Println(renderPost(*post))
	return nil
}

func (c *Cli) runFeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	fs.SetOutput(c.io)
	page := fs.Int("page", 0, "page number, starting from 0")
	size := fs.Int("size", models.DefaultPageSize, "posts per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 0 || *size < 1 || *size > models.MaxPageSize {
		return fmt.Errorf("page must be >= 0 and size between 1 and %d", models.MaxPageSize)
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	feed, err := c.apiClient.Feed(ctx, token, *page, *size)
	if err != nil {
		return err
	}

	c.io.Println(renderTitle("Feed"))
	c.io.Println(renderFeed(feed))
	return nil
}

func (c *Cli) runFollow(ctx context.Context, args []string) error {
	token, userID, username, err := c.resolveUser(ctx, args)
	if err != nil {
		return err
	}

	if _, err := c.apiClient.Follow(ctx, token, userID); err != nil {
		return err
	}

	c.io.Println(renderSuccess("You are now following @" + username))
	return nil
}

func (c *Cli) runUnfollow(ctx context.Context, args []string) error {
	token, userID, username, err := c.resolveUser(ctx, args)
	if err != nil {
		return err
	}

	if err := c.apiClient.Unfollow(ctx, token, userID); err != nil {
		return err
	}

	c.io.Println(renderSuccess("You unfollowed @" + username))
	return nil
}

// resolveUser находит id пользователя по username из аргументов
func (c *Cli) resolveUser(ctx context.Context, args []string) (token, userID, username string, err error) {
	if len(args) != 1 {
		return "", "", "", fmt.Errorf("expected exactly one username")
	}
	username = strings.TrimPrefix(args[0], "@")
	if err := validation.ValidateUsername(username); err != nil {
		return "", "", "", err
	}

	token, err = c.token(ctx)
	if err != nil {
		return "", "", "", err
	}

	user, err := c.apiClient.UserByUsername(ctx, token, username)
	if err != nil {
		return "", "", "", err
	}
	return token, user.ID, user.Username, nil
}
