package render

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/news"
)

func testRenderer() *Renderer {
	return NewRenderer(config.TestConfig())
}

func sampleArticles() []news.Article {
	return []news.Article{
		{
			Source:      news.Source{Name: "Wire"},
			Author:      "Jane Doe",
			Title:       "Markets rally",
			Description: "Stocks <b>rose</b> sharply &amp; bonds fell.",
			URL:         "https://example.com/markets",
			URLToImage:  "https://example.com/markets.jpg",
			PublishedAt: "2025-03-04T10:00:00Z",
		},
		{
			Title:      strings.Repeat("t", 140),
			URL:        "null",
			URLToImage: "null",
		},
		{},
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "shorter kept", text: "short", limit: 10, want: "short"},
		{name: "exact kept", text: "abcde", limit: 5, want: "abcde"},
		{name: "longer cut", text: "abcdef", limit: 5, want: "abcde..."},
		{name: "empty", text: "", limit: 5, want: ""},
		{name: "multibyte counted as runes", text: "héllo wörld", limit: 5, want: "héllo..."},
		{name: "zero limit", text: "abc", limit: 0, want: "..."},
		{name: "negative limit", text: "abc", limit: -1, want: "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.text, tt.limit))
		})
	}
}

func TestTruncate_LengthBound(t *testing.T) {
	texts := []string{"", "a", strings.Repeat("x", 99), strings.Repeat("x", 100), strings.Repeat("x", 101), strings.Repeat("ü", 300)}
	for _, text := range texts {
		for _, limit := range []int{0, 1, 50, 100, 150} {
			got := Truncate(text, limit)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), limit+len(Ellipsis))
			if utf8.RuneCountInString(text) <= limit {
				assert.Equal(t, text, got)
			}
		}
	}
}

func TestRender_Empty(t *testing.T) {
	r := testRenderer()

	assert.Equal(t, View{Empty: true}, r.Render(nil))
	assert.Equal(t, View{Empty: true}, r.Render([]news.Article{}))
}

func TestRender_Cards(t *testing.T) {
	view := testRenderer().Render(sampleArticles())
	require.False(t, view.Empty)
	require.Len(t, view.Cards, 3)

	full := view.Cards[0]
	assert.Equal(t, "Markets rally", full.Title)
	assert.Equal(t, "Stocks rose sharply & bonds fell.", full.Description)
	assert.Equal(t, "https://example.com/markets.jpg", full.Image)
	assert.Equal(t, "Mar 4, 2025", full.Date)
	assert.Equal(t, "Wire", full.Source)
	assert.Equal(t, "Jane Doe", full.Author)
	assert.Equal(t, "https://example.com/markets", full.Link)
	assert.True(t, full.Openable())

	long := view.Cards[1]
	assert.Equal(t, strings.Repeat("t", TitleLimit)+Ellipsis, long.Title)
	assert.Equal(t, DefaultImagePlaceholder, long.Image, "literal null image falls back to the placeholder")
	assert.False(t, long.Openable(), "literal null url is not openable")

	blank := view.Cards[2]
	assert.Equal(t, NoTitle, blank.Title)
	assert.Equal(t, NoDescription, blank.Description)
	assert.Equal(t, UnknownSource, blank.Source)
	assert.Equal(t, UnknownDate, blank.Date)
	assert.Equal(t, DefaultImagePlaceholder, blank.Image)
	assert.False(t, blank.Openable())
}

func TestRender_PreservesOrder(t *testing.T) {
	articles := []news.Article{{Title: "z"}, {Title: "a"}, {Title: "m"}}
	view := testRenderer().Render(articles)

	var titles []string
	for _, c := range view.Cards {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"z", "a", "m"}, titles)
}

func TestRender_Idempotent(t *testing.T) {
	r := testRenderer()
	first := r.Render(sampleArticles())
	second := r.Render(sampleArticles())

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(Card{})); diff != "" {
		t.Errorf("rendering twice differs (-first +second):\n%s", diff)
	}
}

func TestRender_DescriptionTruncation(t *testing.T) {
	card := testRenderer().Card(news.Article{Description: strings.Repeat("d", 400)})
	assert.Equal(t, strings.Repeat("d", DescriptionLimit)+Ellipsis, card.Description)
}

func TestResolveImage(t *testing.T) {
	r := testRenderer()

	assert.Equal(t, "https://img.example.com/a.png", r.ResolveImage("https://img.example.com/a.png"))
	assert.Equal(t, DefaultImagePlaceholder, r.ResolveImage(""))
	assert.Equal(t, DefaultImagePlaceholder, r.ResolveImage("null"))
	assert.Equal(t, DefaultImagePlaceholder, r.ResolveImage("  "))
}

func TestResolveImage_ConfiguredPlaceholder(t *testing.T) {
	cfg := config.TestConfig()
	cfg.UI.ImagePlaceholder = "https://cdn.example.com/placeholder.png"
	cfg.UI.ImageUnavailable = ""

	r := NewRenderer(cfg)
	assert.Equal(t, "https://cdn.example.com/placeholder.png", r.ResolveImage("null"))

	card := r.Card(news.Article{URLToImage: "https://broken.example.com/x.jpg"})
	card.MarkImageBroken()
	assert.Equal(t, DefaultImageUnavailable, card.Image)
}

func TestCard_MarkImageBroken(t *testing.T) {
	card := testRenderer().Card(news.Article{URLToImage: "https://broken.example.com/x.jpg"})
	require.Equal(t, "https://broken.example.com/x.jpg", card.Image)

	card.MarkImageBroken()
	assert.Equal(t, DefaultImageUnavailable, card.Image)
	assert.NotEqual(t, DefaultImagePlaceholder, card.Image)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-04T10:00:00Z", "Mar 4, 2025"},
		{"2024-12-31T23:59:59.123Z", "Dec 31, 2024"},
		{"2024-02-29T08:00:00+02:00", "Feb 29, 2024"},
		{"2024-07-01", "Jul 1, 2024"},
		{"", UnknownDate},
		{"null", UnknownDate},
		{"yesterday", UnknownDate},
	}

	for _, tt := range tests {
		got, _ := FormatDate(tt.in)
		assert.Equal(t, tt.want, got, "FormatDate(%q)", tt.in)
	}
}

func TestMarkdown(t *testing.T) {
	r := testRenderer()
	card := r.Card(sampleArticles()[0])
	now := time.Date(2025, 3, 4, 13, 0, 0, 0, time.UTC)

	md := Markdown(card, now)
	assert.Contains(t, md, "# Markets rally")
	assert.Contains(t, md, "**Wire** · Jane Doe · Mar 4, 2025 (3 hours ago)")
	assert.Contains(t, md, "![image](https://example.com/markets.jpg)")
	assert.Contains(t, md, "[Read More](https://example.com/markets)")

	noLink := Markdown(r.Card(news.Article{}), now)
	assert.Contains(t, noLink, "*No link available*")
	assert.Contains(t, noLink, UnknownDate)
}
