package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/controller"
	"github.com/pders01/newsdesk/internal/debuglog"
	"github.com/pders01/newsdesk/internal/news"
	"github.com/pders01/newsdesk/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	linkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Underline(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
)

func newHeadlinesCmd(opts *rootOptions) *cobra.Command {
	var sel news.Selection

	cmd := &cobra.Command{
		Use:   "headlines",
		Short: "Print one page of headlines and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			defer debuglog.Close()
			return printHeadlines(cmd, cfg, sel)
		},
	}

	cmd.Flags().StringVarP(&sel.Category, "category", "c", "", "category to show (business, technology, ...)")
	cmd.Flags().StringVarP(&sel.Query, "query", "q", "", "search query")
	cmd.MarkFlagsMutuallyExclusive("category", "query")

	return cmd
}

func printHeadlines(cmd *cobra.Command, cfg *config.Config, sel news.Selection) error {
	ctrl := controller.New(cfg, news.NewFetcher(cfg), nil)
	sink := &textSink{
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		renderer: render.NewRenderer(cfg),
	}
	if err := ctrl.Cycle(cmd.Context(), sel, sink); err != nil {
		return errReported
	}
	return nil
}

// textSink prints a fetch cycle as plain styled text.
type textSink struct {
	out      io.Writer
	errOut   io.Writer
	renderer *render.Renderer
}

func (s *textSink) SetLoading(loading bool) {
	if loading {
		fmt.Fprintln(s.errOut, metaStyle.Render("Loading news…"))
	}
}

func (s *textSink) ClearError() {}

func (s *textSink) ShowError(message string) {
	fmt.Fprintln(s.errOut, errStyle.Render("✗ "+message))
}

func (s *textSink) ShowArticles(articles []news.Article) {
	view := s.renderer.Render(articles)
	if view.Empty {
		fmt.Fprintln(s.out, titleStyle.Render(render.NoResultsTitle))
		fmt.Fprintln(s.out, metaStyle.Render(render.NoResultsHint))
		return
	}
	for _, c := range view.Cards {
		fmt.Fprintln(s.out, titleStyle.Render(c.Title))
		meta := c.Source + " • " + c.Date
		if c.Author != "" {
			meta = c.Source + " • " + c.Author + " • " + c.Date
		}
		fmt.Fprintln(s.out, metaStyle.Render(meta))
		fmt.Fprintln(s.out, c.Description)
		if c.Openable() {
			fmt.Fprintln(s.out, linkStyle.Render(c.Link))
		}
		fmt.Fprintln(s.out)
	}
}
