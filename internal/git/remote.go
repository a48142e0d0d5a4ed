package git

import (
	"fmt"
	"net/url"
	"strings"
)

// WebURL converts a remote URL into the https URL of the repository's web
// page, e.g. "git@github.com:owner/repo.git" -> "https://github.com/owner/repo".
// Credentials and ports are dropped.
func WebURL(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", fmt.Errorf("empty remote URL")
	}

	var host, path string
	if isSCPLike(remote) {
		// user@host:owner/repo
		userHost, p, _ := strings.Cut(remote, ":")
		host = userHost
		if _, h, found := strings.Cut(userHost, "@"); found {
			host = h
		}
		path = p
	} else {
		u, err := url.Parse(strings.TrimPrefix(remote, "git+"))
		if err != nil {
			return "", fmt.Errorf("parsing remote URL %q: %w", remote, err)
		}
		switch u.Scheme {
		case "http", "https", "ssh", "git":
		default:
			return "", fmt.Errorf("unsupported remote URL scheme %q", u.Scheme)
		}
		host = u.Hostname()
		path = u.Path
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if host == "" || path == "" {
		return "", fmt.Errorf("cannot derive web URL from %q", remote)
	}
	return "https://" + host + "/" + path, nil
}

// isSCPLike reports whether url uses the scp-like "user@host:path" form.
func isSCPLike(url string) bool {
	if isSSHURL(url) && !strings.HasPrefix(url, "git@") {
		return false
	}
	if strings.Contains(url, "://") {
		return false
	}
	colon := strings.Index(url, ":")
	slash := strings.Index(url, "/")
	return colon > 0 && (slash < 0 || colon < slash)
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}
