package render

import (
	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/news"
)

const (
	NoResultsTitle = "No articles found"
	NoResultsHint  = "Try searching for different keywords or browse different categories."
)

// View is what the list region shows after a successful fetch. Errors never
// produce a View; they go to the error banner instead.
type View struct {
	Empty bool
	Cards []Card
}

// Renderer maps articles to cards. It holds no state between calls, so the
// same input always yields the same View.
type Renderer struct {
	imagePlaceholder string
	imageUnavailable string
}

func NewRenderer(cfg *config.Config) *Renderer {
	r := &Renderer{
		imagePlaceholder: cfg.UI.ImagePlaceholder,
		imageUnavailable: cfg.UI.ImageUnavailable,
	}
	if r.imagePlaceholder == "" {
		r.imagePlaceholder = DefaultImagePlaceholder
	}
	if r.imageUnavailable == "" {
		r.imageUnavailable = DefaultImageUnavailable
	}
	return r
}

// Render builds the list view. Article order is preserved.
func (r *Renderer) Render(articles []news.Article) View {
	if len(articles) == 0 {
		return View{Empty: true}
	}
	cards := make([]Card, len(articles))
	for i, a := range articles {
		cards[i] = r.Card(a)
	}
	return View{Cards: cards}
}

// Card derives the display projection of a single article.
func (r *Renderer) Card(a news.Article) Card {
	title := NoTitle
	if t := plainText(a.Title); t != "" {
		title = Truncate(t, TitleLimit)
	}

	description := NoDescription
	if d := plainText(a.Description); d != "" {
		description = Truncate(d, DescriptionLimit)
	}

	source := UnknownSource
	if !isAbsent(a.Source.Name) {
		source = a.Source.Name
	}

	author := ""
	if !isAbsent(a.Author) {
		author = a.Author
	}

	link := ""
	if !isAbsent(a.URL) {
		link = a.URL
	}

	date, published := FormatDate(a.PublishedAt)

	return Card{
		Title:            title,
		Description:      description,
		Image:            r.ResolveImage(a.URLToImage),
		Date:             date,
		Published:        published,
		Source:           source,
		Author:           author,
		Link:             link,
		imageUnavailable: r.imageUnavailable,
	}
}

// ResolveImage keeps a usable image URL and substitutes the placeholder for
// an absent one or the literal "null".
func (r *Renderer) ResolveImage(imageURL string) string {
	if isAbsent(imageURL) {
		return r.imagePlaceholder
	}
	return imageURL
}
