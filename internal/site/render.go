// Package site serves the server-rendered association page.
package site

import (
	"embed"
	"fmt"
	"io"

	"github.com/engineeringstudentstrieste/est-services/internal/content"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/osteele/liquid"
)

//go:embed templates/page.liquid
var pageTemplate []byte

//go:embed static
var staticFS embed.FS

// Section is a titled block of the page.
type Section struct {
	ID      string
	Kicker  string
	Title   string
	Variant string
}

// NewSection returns a section with the light variant unless another is given.
func NewSection(id, kicker, title, variant string) Section {
	if variant == "" {
		variant = "light"
	}
	return Section{ID: id, Kicker: kicker, Title: title, Variant: variant}
}

// Sections in page order.
var Sections = []Section{
	NewSection("chi-siamo", "Missione", "Chi siamo", ""),
	NewSection("attivita", "Percorsi concreti", "Cosa facciamo", ""),
	NewSection("eventi", "Calendario", "Eventi in arrivo", "dark"),
	NewSection("contatti", "Parliamone", "Contatti", ""),
	NewSection("supportaci", "Come contribuire", "Supportaci", "accent"),
}

// Page is the data behind one render.
type Page struct {
	Content    *content.Site
	Sections   []Section
	Year       int
	Member     *models.Member
	LoginError string
	Notice     string
}

// Renderer renders the page template.
type Renderer struct {
	tpl *liquid.Template
}

func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()
	tpl, err := engine.ParseTemplate(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	out, err := r.tpl.Render(bindings(page))
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, werr := w.Write(out)
	return werr
}

// bindings flattens the page into template variables. Empty optional
// values are left out so that Liquid treats them as absent.
func bindings(page Page) liquid.Bindings {
	sections := page.Sections
	if sections == nil {
		sections = Sections
	}

	b := liquid.Bindings{
		"sections": sectionBindings(sections),
		"year":     page.Year,
	}

	if c := page.Content; c != nil {
		b["nav"] = linkBindings(c.Nav)
		b["footer"] = linkBindings(c.Footer)
		b["hero"] = map[string]any{
			"kicker": c.Hero.Kicker,
			"text":   c.Hero.Text,
			"highlight": map[string]any{
				"kicker": c.Hero.Highlight.Kicker,
				"title":  c.Hero.Highlight.Title,
				"text":   c.Hero.Highlight.Text,
				"target": c.Hero.Highlight.Target,
			},
		}
		b["about"] = map[string]any{
			"text":    c.About.Text,
			"bullets": c.About.Bullets,
		}

		initiatives := make([]map[string]any, 0, len(c.Initiatives))
		for _, i := range c.Initiatives {
			initiatives = append(initiatives, map[string]any{"title": i.Title, "description": i.Description})
		}
		b["initiatives"] = initiatives

		events := make([]map[string]any, 0, len(c.Events))
		for _, e := range c.Events {
			events = append(events, map[string]any{"title": e.Title, "date": e.Date, "description": e.Description})
		}
		b["events"] = events

		actions := make([]map[string]any, 0, len(c.SupportActions))
		for _, a := range c.SupportActions {
			actions = append(actions, map[string]any{"title": a.Title, "body": a.Body})
		}
		b["support_actions"] = actions

		b["contact"] = map[string]any{
			"intro":             c.Contact.Intro,
			"email":             c.Contact.Email,
			"instagram":         c.Contact.Instagram,
			"telegram":          c.Contact.Telegram,
			"partnership_email": c.Contact.PartnershipEmail,
		}
	}

	if m := page.Member; m != nil {
		b["member"] = map[string]any{
			"email":    m.Email,
			"name":     m.Name,
			"verified": m.Verified,
		}
	}
	if page.LoginError != "" {
		b["login_error"] = page.LoginError
	}
	if page.Notice != "" {
		b["notice"] = page.Notice
	}

	return b
}

func sectionBindings(sections []Section) []map[string]any {
	out := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		m := map[string]any{
			"id":      s.ID,
			"title":   s.Title,
			"variant": s.Variant,
		}
		if s.Variant == "" {
			m["variant"] = "light"
		}
		if s.Kicker != "" {
			m["kicker"] = s.Kicker
		}
		out = append(out, m)
	}
	return out
}

func linkBindings(links []content.NavLink) []map[string]any {
	out := make([]map[string]any, 0, len(links))
	for _, l := range links {
		out = append(out, map[string]any{"label": l.Label, "target": l.Target})
	}
	return out
}
