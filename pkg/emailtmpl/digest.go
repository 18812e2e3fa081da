package emailtmpl

import (
	"bytes"
	"html/template"
)

// SummaryItem is one ranked insight line in the digest email.
type SummaryItem struct {
	Title   string
	Summary string
	Link    string
}

// DigestData carries everything the weekly digest template needs.
type DigestData struct {
	CafeName       string
	WeekOf         string
	SummaryItems   []SummaryItem
	FocusLine      string
	FocusReason    string
	FocusLink      string
	CTAURL         string
	UnsubscribeURL string
}

// Renderer produces the final email body for a digest.
type Renderer interface {
	RenderDigest(data DigestData) (string, error)
}

const digestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, Helvetica, Arial, sans-serif; color: #1f2933; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h1 style="font-size: 20px;">Your week at {{.CafeName}}</h1>
  <p style="color: #616e7c;">{{.WeekOf}}</p>
{{if .FocusLine}}
  <div style="background: #fff7ed; border-radius: 8px; padding: 16px; margin: 16px 0;">
    <p style="font-weight: 600; margin: 0 0 4px;">{{.FocusLine}}</p>
    <p style="margin: 0 0 8px;">{{.FocusReason}}</p>
    <a href="{{.FocusLink}}">See details</a>
  </div>
{{end}}
{{if .SummaryItems}}
  <ul style="padding-left: 20px;">
  {{range .SummaryItems}}
    <li style="margin-bottom: 12px;">
      <strong>{{.Title}}</strong><br/>
      {{.Summary}}<br/>
      <a href="{{.Link}}">View in dashboard</a>
    </li>
  {{end}}
  </ul>
{{end}}
  <p><a href="{{.CTAURL}}" style="display: inline-block; background: #7c5cff; color: #ffffff; padding: 10px 18px; border-radius: 6px; text-decoration: none;">Open your dashboard</a></p>
  <p style="font-size: 12px; color: #9aa5b1;">You receive this because weekly digests are enabled for your account.
    <a href="{{.UnsubscribeURL}}">Unsubscribe</a></p>
</body>
</html>`

// HTMLRenderer renders the digest with the built-in HTML template.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("digest").Parse(digestTemplate)),
	}
}

func (r *HTMLRenderer) RenderDigest(data DigestData) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
