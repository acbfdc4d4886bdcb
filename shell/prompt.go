package shell

import (
	"os"
	"os/user"
	"strings"
)

// DefaultPromptTemplate is the classic user@host:cwd$ display.
const DefaultPromptTemplate = "{user}@{host}:{cwd}$ "

// Prompt formats the session prompt from a template with {user}, {host}
// and {cwd} placeholders.
type Prompt struct {
	Template string
}

// Format substitutes the placeholders and returns the display string.
func (p Prompt) Format(user, host, cwd string) string {
	tmpl := p.Template
	if tmpl == "" {
		tmpl = DefaultPromptTemplate
	}
	return strings.NewReplacer(
		"{user}", user,
		"{host}", host,
		"{cwd}", cwd,
	).Replace(tmpl)
}

// CurrentUser returns the login name of the process owner, falling back
// to the USER environment variable.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "user"
}

// ShortHostname returns the host name trimmed at its first dot.
func ShortHostname() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "localhost"
	}
	host, _, _ = strings.Cut(host, ".")
	return host
}
