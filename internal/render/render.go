// Package render turns session state into markdown and, through glamour,
// into styled terminal output.
package render

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/id"
)

//go:embed templates/*.md
var templates embed.FS

// StylePlain skips glamour and emits the raw markdown.
const StylePlain = "plain"

// Options configure a Renderer.
type Options struct {
	CurrencySymbol    string
	ThousandSeparator string
	DecimalSeparator  string
	FractionDigits    int
	Style             string // glamour style name, "auto", or StylePlain
	WordWrap          int
}

// Renderer renders view-models and session state.
type Renderer struct {
	opts  Options
	money MoneyFormat
	tmpl  *template.Template
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		opts:  opts,
		money: NewMoneyFormat(opts.CurrencySymbol, opts.ThousandSeparator, opts.DecimalSeparator, opts.FractionDigits),
	}

	funcs := template.FuncMap{
		"money":   r.money.Format,
		"percent": FormatPercent,
		"id":      id.FormatMemberID,
		"cell":    cell,
	}
	tmpl, err := template.New("render").Funcs(funcs).ParseFS(templates, "templates/*.md")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Money formats an amount the way tables show it.
func (r *Renderer) Money(d decimal.Decimal) string {
	return r.money.Format(d)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}
	return b.String(), nil
}

// Markdown renders the whole visible state: the login form, or the current
// tab with its open pane and any message.
func (r *Renderer) Markdown(state app.State) (string, error) {
	switch st := state.(type) {
	case *app.NotLoggedIn:
		return loginMarkdown(st.Form), nil
	case *app.LoggedIn:
		return r.loggedInMarkdown(st)
	default:
		return "", fmt.Errorf("unexpected state %T", state)
	}
}

func (r *Renderer) loggedInMarkdown(st *app.LoggedIn) (string, error) {
	var b strings.Builder
	b.WriteString(tabBar(st.Tab))
	b.WriteString("\n\n")

	body, err := r.TabData(st.Data)
	if err != nil {
		return "", err
	}
	b.WriteString(body)

	if st.Pane != nil {
		b.WriteString("\n")
		b.WriteString(paneMarkdown(st.Pane))
	}
	if st.Notice != "" {
		fmt.Fprintf(&b, "\n> %s\n", st.Notice)
	}
	return b.String(), nil
}

// TabData renders one tab's content.
func (r *Renderer) TabData(data app.TabData) (string, error) {
	switch d := data.(type) {
	case *app.HomeData:
		return r.execute("home.md", d.View)
	case *app.UsersData:
		return r.execute("users.md", d.View)
	case *app.DebtsData:
		return r.execute("debts.md", d.View)
	case *app.FetchError:
		return fmt.Sprintf("**%s**\n", d.Message), nil
	default:
		return "", fmt.Errorf("unexpected tab data %T", data)
	}
}

// Terminal styles markdown for the terminal with glamour. StylePlain
// returns md unchanged.
func (r *Renderer) Terminal(md string) (string, error) {
	if r.opts.Style == StylePlain {
		return md, nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(r.opts.WordWrap)}
	if r.opts.Style == "" || r.opts.Style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.opts.Style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func tabBar(current app.Tab) string {
	tabs := []app.Tab{app.TabHome, app.TabUsers, app.TabDebts}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		name := strings.ToUpper(t.String()[:1]) + t.String()[1:]
		if t == current {
			name = "**" + name + "**"
		}
		parts[i] = name
	}
	return "# Family Bank\n\n" + strings.Join(parts, " | ")
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
