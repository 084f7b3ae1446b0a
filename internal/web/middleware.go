package web

import (
	"net/http"
	"net/url"
	"strings"
)

// redirectWith sends a 303 to path carrying a one-shot notice or error
// message in the query string.
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, message string) {
	u, err := url.Parse(path)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Del("notice")
	q.Del("error")
	q.Set(key, message)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// localPath returns next if it is a path on this site, otherwise fallback.
func localPath(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
