package email

import (
	"embed"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // display timezone must load on minimal images

	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const submittedAtLayout = "Mon, Jan 2, 2006 at 3:04 PM MST"

type templateKind struct {
	title         string
	subjectPrefix string
	formName      string
}

var kinds = map[string]templateKind{
	"contact": {title: "New Contact Form Submission", subjectPrefix: "New Contact", formName: "contact"},
	"demo":    {title: "New Demo Request", subjectPrefix: "Demo Request", formName: "demo request"},
	"about":   {title: "New About Page Inquiry", subjectPrefix: "About Page Inquiry", formName: "about page"},
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML neutralizes & < > " ' so user text cannot inject markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ContactEmailData holds the data for a contact notification
type ContactEmailData struct {
	Template string

	Name          string
	Email         string
	Phone         string
	Company       string
	Role          string
	Message       string
	MonthlyClaims string
	PreferredTime string

	Referrer  string
	PageURL   string
	Timestamp string    // as reported by the browser, RFC 3339
	Received  time.Time // server receipt time, used when Timestamp is empty
	IP        string
	UserAgent string
	RequestID string
}

// Rendered is a finished subject and HTML body
type Rendered struct {
	Subject string
	HTML    string
}

// Renderer renders notification emails from the embedded Liquid templates.
// It is safe for concurrent use once built.
type Renderer struct {
	engine   *liquid.Engine
	layout   *liquid.Template
	bodies   map[string]*liquid.Template
	location *time.Location
}

// NewRenderer parses every template up front and loads the display timezone.
func NewRenderer(timezone string) (*Renderer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", timezone, err)
	}

	r := &Renderer{
		engine:   liquid.NewEngine(),
		bodies:   make(map[string]*liquid.Template, len(kinds)),
		location: loc,
	}

	if r.layout, err = r.parse("layout"); err != nil {
		return nil, err
	}
	for name := range kinds {
		tpl, err := r.parse(name)
		if err != nil {
			return nil, err
		}
		r.bodies[name] = tpl
	}
	return r, nil
}

func (r *Renderer) parse(name string) (*liquid.Template, error) {
	src, err := templateFS.ReadFile("templates/" + name + ".liquid")
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	tpl, serr := r.engine.ParseString(string(src))
	if serr != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, serr)
	}
	return tpl, nil
}

// Render builds the subject and HTML body for data.Template.
func (r *Renderer) Render(data ContactEmailData) (*Rendered, error) {
	name := data.Template
	if name == "" {
		name = "contact"
	}
	kind, ok := kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown email template %q", name)
	}

	bindings := r.bindings(data, kind)

	body, serr := r.bodies[name].RenderString(bindings)
	if serr != nil {
		return nil, fmt.Errorf("render %s body: %w", name, serr)
	}
	bindings["content"] = body

	html, serr := r.layout.RenderString(bindings)
	if serr != nil {
		return nil, fmt.Errorf("render layout: %w", serr)
	}

	return &Rendered{
		Subject: kind.subjectPrefix + ": " + singleLine(data.Name),
		HTML:    html,
	}, nil
}

// bindings escapes every user value. Empty optional values stay unbound so
// the templates' {% if %} blocks drop them.
func (r *Renderer) bindings(data ContactEmailData, kind templateKind) liquid.Bindings {
	b := liquid.Bindings{
		"title":        kind.title,
		"form_name":    kind.formName,
		"name":         EscapeHTML(data.Name),
		"email":        EscapeHTML(data.Email),
		"message":      nl2br(EscapeHTML(data.Message)),
		"referrer":     EscapeHTML(orDefault(data.Referrer, "direct")),
		"page_url":     EscapeHTML(orDefault(data.PageURL, "unknown")),
		"submitted_at": EscapeHTML(r.submittedAt(data.Timestamp, data.Received)),
		"ip":           EscapeHTML(orDefault(data.IP, "unknown")),
	}

	optional := map[string]string{
		"phone":          data.Phone,
		"company":        data.Company,
		"role":           data.Role,
		"monthly_claims": data.MonthlyClaims,
		"preferred_time": data.PreferredTime,
		"user_agent":     data.UserAgent,
		"request_id":     data.RequestID,
	}
	for key, val := range optional {
		if val != "" {
			b[key] = EscapeHTML(val)
		}
	}
	return b
}

func (r *Renderer) submittedAt(raw string, received time.Time) string {
	if raw == "" {
		if received.IsZero() {
			received = time.Now()
		}
		return received.In(r.location).Format(submittedAtLayout)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.In(r.location).Format(submittedAtLayout)
}

func nl2br(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
