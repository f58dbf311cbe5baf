package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/posts"
	"github.com/matzehuels/orbitcards/pkg/render/styles"
)

// postsCommand creates the posts command for inspecting a post source.
func (c *CLI) postsCommand() *cobra.Command {
	var (
		origin  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "posts [posts.json]",
		Short: "List the posts a source provides",
		Long: `List the posts a source provides, in deck order.

Paths are normalized the same way the scene does before cards are placed,
and each post's link is resolved against the site origin. Posts without a
path are listed without a link and are not clickable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := defaultPostsFile
			if len(args) == 1 {
				input = args[0]
			}
			if !cmd.Flags().Changed("origin") {
				cfg, _, err := config.Resolve(c.configPath)
				if err != nil {
					return err
				}
				origin = cfg.Cards.Origin
			}
			if origin != "" {
				if err := errors.ValidateOrigin(origin); err != nil {
					return err
				}
			}

			list, err := posts.Load(input)
			if err != nil {
				return err
			}
			if jsonOut {
				return writePostsJSON(cmd.OutOrStdout(), list, origin)
			}
			fmt.Fprintln(cmd.OutOrStdout(), postsTable(list, origin))
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "site origin links resolve against (default: config value)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print posts as JSON")

	return cmd
}

type postEntry struct {
	posts.Post
	Link string `json:"link,omitempty"`
}

func writePostsJSON(w io.Writer, list []posts.Post, origin string) error {
	entries := make([]postEntry, len(list))
	for i, p := range list {
		link, _ := p.Link(origin)
		entries[i] = postEntry{Post: p, Link: link}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode posts")
	}
	return nil
}

// postsTable renders posts as a table.
func postsTable(list []posts.Post, origin string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(list))
	for i, p := range list {
		link, err := p.Link(origin)
		if err != nil {
			link = "—"
		}
		rows[i] = []string{fmt.Sprint(i + 1), styles.Truncate(p.Title, 48), p.DisplayDate(), link}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Title", "Date", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row >= len(list):
				return lipgloss.NewStyle()
			case col == 3 && list[row].Path != "":
				return StyleLink
			case col == 3, col == 0:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}
