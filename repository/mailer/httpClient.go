package mailerrepo

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/odekodu/ecobnb-api/util/httpx"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type httpRepo struct {
	apiKey string
	from   string
	base   string
	client *http.Client
	tmpl   *template.Template
}

func NewHTTP(apiKey, domain, from string) Repo {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.txt"))
	return &httpRepo{
		apiKey: apiKey,
		from:   from,
		base:   "https://api.mailgun.net/v3/" + domain,
		client: httpx.Client(),
		tmpl:   tmpl,
	}
}

func (r *httpRepo) Send(ctx context.Context, msg Message) error {
	var text bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&text, msg.Template+".txt", msg.Context); err != nil {
		return fmt.Errorf("render mail template %q: %w", msg.Template, err)
	}

	body := map[string]any{
		"from":    r.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"text":    text.String(),
	}
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/messages", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.SetBasicAuth("api", r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail send failed: %s", resp.Status)
	}
	return nil
}
