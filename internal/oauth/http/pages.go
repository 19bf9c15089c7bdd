package http

import (
	"html/template"
	"net/http"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/service"
)

// The consent and error pages are rendered server-side with html/template.
// Styling is deliberately minimal; the host application wraps these flows
// in its own chrome when embedding.

var errorPageTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Authorization Error</title>
<style>
body { font-family: system-ui, sans-serif; background: #f5f5f7; margin: 0; }
.card { max-width: 28rem; margin: 6rem auto; background: #fff; border-radius: 8px;
        padding: 2rem; box-shadow: 0 1px 4px rgba(0,0,0,.12); }
h1 { font-size: 1.2rem; margin-top: 0; }
p { color: #444; }
</style>
</head>
<body>
<div class="card">
<h1>Authorization Error</h1>
<p>{{.Message}}</p>
<p>Return to the application you came from and try again.</p>
</div>
</body>
</html>
`))

var consentPageTmpl = template.Must(template.New("consent").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Authorize {{.ClientName}}</title>
<style>
body { font-family: system-ui, sans-serif; background: #f5f5f7; margin: 0; }
.card { max-width: 28rem; margin: 6rem auto; background: #fff; border-radius: 8px;
        padding: 2rem; box-shadow: 0 1px 4px rgba(0,0,0,.12); }
h1 { font-size: 1.2rem; margin-top: 0; }
p.desc { color: #666; }
ul { padding-left: 1.2rem; }
li { margin: .4rem 0; }
.actions { display: flex; gap: .75rem; margin-top: 1.5rem; }
button { flex: 1; padding: .6rem; border-radius: 6px; border: 1px solid #ccc;
         background: #fff; cursor: pointer; font-size: 1rem; }
button.approve { background: #2563eb; border-color: #2563eb; color: #fff; }
</style>
</head>
<body>
<div class="card">
<h1>{{.ClientName}} wants to access your CampusBoard account</h1>
{{if .ClientDescription}}<p class="desc">{{.ClientDescription}}</p>{{end}}
<p>This application is asking to:</p>
<ul>
{{range .ScopeLabels}}<li>{{.}}</li>
{{end}}
</ul>
<form method="POST" action="/oauth/authorize/confirm">
<input type="hidden" name="client_id" value="{{.ClientID}}">
<input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
<input type="hidden" name="scope" value="{{.Scope}}">
<input type="hidden" name="state" value="{{.State}}">
<input type="hidden" name="token" value="{{.Token}}">
<input type="hidden" name="code_challenge" value="{{.CodeChallenge}}">
<input type="hidden" name="code_challenge_method" value="{{.CodeChallengeMethod}}">
<div class="actions">
<button type="submit" name="action" value="deny">Deny</button>
<button class="approve" type="submit" name="action" value="approve">Allow</button>
</div>
</form>
</div>
</body>
</html>
`))

type consentPageData struct {
	ClientName          string
	ClientDescription   string
	ScopeLabels         []string
	ClientID            string
	RedirectURI         string
	Scope               string
	State               string
	Token               string
	CodeChallenge       string
	CodeChallengeMethod string
}

func writeErrorPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = errorPageTmpl.Execute(w, struct{ Message string }{Message: message})
}

func writePageError(w http.ResponseWriter, err *service.PageError) {
	writeErrorPage(w, err.Status, err.Message)
}

func scopeLabels(scopes []string) []string {
	labels := make([]string, 0, len(scopes))
	for _, s := range scopes {
		labels = append(labels, domain.ScopeLabel(s))
	}
	return labels
}
