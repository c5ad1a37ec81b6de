package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/iudanet/gophsocial/pkg/api"
)

var (
	primary = lipgloss.Color("#7D56F4") // Purple
	accent  = lipgloss.Color("#00E5FF") // Cyan
	success = lipgloss.Color("#00C853") // Green
	warning = lipgloss.Color("#FFD600") // Gold
	muted   = lipgloss.Color("#565F89") // Gray

	titleStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	authorStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	successStyle = lipgloss.NewStyle().
			Foreground(success)

	warningStyle = lipgloss.NewStyle().
			Foreground(warning)

	infoKeyStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(16)

	postStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(muted).
			PaddingLeft(1)
)

func renderTitle(s string) string {
	return titleStyle.Render("=== " + s + " ===")
}

func renderSuccess(s string) string {
	return successStyle.Render("✓ " + s)
}

func renderWarning(s string) string {
	return warningStyle.Render("⚠ " + s)
}

func renderInfo(key, value string) string {
	return infoKeyStyle.Render(key+":") + value
}

func renderPost(p api.PostResponse) string {
	header := authorStyle.Render("@"+p.User.Username) + " " +
		mutedStyle.Render(p.CreatedAt.Local().Format(time.DateTime))
	footer := mutedStyle.Render(fmt.Sprintf("♥ %d  💬 %d  id %s", p.LikeCount, p.CommentCount, p.ID))
	return postStyle.Render(strings.Join([]string{header, p.Content, footer}, "\n"))
}

func renderFeed(page *api.Page[api.PostResponse]) string {
	if len(page.Content) == 0 {
		return mutedStyle.Render("Your feed is empty. Follow someone with 'gophsocial follow <username>'.")
	}

	blocks := make([]string, 0, len(page.Content)+1)
	for _, p := range page.Content {
		blocks = append(blocks, renderPost(p))
	}
	blocks = append(blocks, mutedStyle.Render(fmt.Sprintf("page %d of %d, %d posts total",
		page.Page+1, max(page.TotalPages, 1), page.TotalElements)))
	return strings.Join(blocks, "\n\n")
}
