// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the backend session cookie between runs.
//
// The browser client keeps its session implicitly (credentialed fetch
// against the cookie store); a terminal client needs an explicit jar.
// Jar wraps net/http/cookiejar and mirrors every cookie the backend
// sets into a JSON file under the user's config directory, mode 0600.
// The OAuth login itself still happens in a browser; after the
// redirect chain completes, the user re-checks the session and the
// cookie arrives on the next /api/me response.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Jar is a persistent http.CookieJar scoped to one backend server.
//
// The inner cookiejar answers Cookies for outgoing requests; saved
// holds the response cookies as the backend sent them, keyed by name.
// The split exists because cookiejar returns only name and value on
// the way back out, which would strip the expiry (and every other
// attribute) from the persisted file.
type Jar struct {
	inner     *cookiejar.Jar
	path      string
	serverURL *url.URL

	mu    sync.Mutex
	saved map[string]*http.Cookie
}

// persistedCookie is the on-disk shape of one cookie.
type persistedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// Open creates a Jar for the given server, loading any previously
// saved cookies from path. A missing or corrupt file starts an empty
// jar; the worst case is a fresh login, not a failure.
func Open(path, serverURL string) (*Jar, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("session: invalid server URL %q: %w", serverURL, err)
	}

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("session: creating cookie jar: %w", err)
	}

	jar := &Jar{
		inner:     inner,
		path:      path,
		serverURL: parsed,
		saved:     make(map[string]*http.Cookie),
	}
	jar.load()
	return jar, nil
}

// DefaultPath returns the conventional jar location under the user
// config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session: resolving config dir: %w", err)
	}
	return filepath.Join(configDir, "folio", "session.json"), nil
}

// SetCookies stores cookies from a response and persists the jar.
// Implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	for _, cookie := range cookies {
		// MaxAge < 0 and a past Expires are both deletions.
		if cookie.MaxAge < 0 || (!cookie.Expires.IsZero() && cookie.Expires.Before(now)) {
			delete(j.saved, cookie.Name)
			continue
		}
		kept := *cookie
		if kept.Expires.IsZero() && kept.MaxAge > 0 {
			kept.Expires = now.Add(time.Duration(kept.MaxAge) * time.Second)
		}
		j.saved[kept.Name] = &kept
	}

	// Persistence failures are non-fatal: the session still works for
	// this run, and the next run simply requires a fresh login.
	_ = j.save()
}

// Cookies returns the cookies to send with a request. Implements
// http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// Clear drops all cookies for the server and removes the saved file.
// Used on logout.
func (j *Jar) Clear() error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("session: resetting cookie jar: %w", err)
	}
	j.inner = inner
	j.mu.Lock()
	j.saved = make(map[string]*http.Cookie)
	j.mu.Unlock()
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: removing %s: %w", j.path, err)
	}
	return nil
}

func (j *Jar) load() {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}
	var persisted []persistedCookie
	if err := json.Unmarshal(data, &persisted); err != nil {
		return
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(persisted))
	j.mu.Lock()
	for _, cookie := range persisted {
		if !cookie.Expires.IsZero() && cookie.Expires.Before(now) {
			continue
		}
		restored := &http.Cookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Domain:   cookie.Domain,
			Expires:  cookie.Expires,
			Secure:   cookie.Secure,
			HttpOnly: cookie.HTTPOnly,
		}
		j.saved[restored.Name] = restored
		cookies = append(cookies, restored)
	}
	j.mu.Unlock()
	j.inner.SetCookies(j.serverURL, cookies)
}

// save writes the saved map, not the inner jar's view of it, so the
// file keeps each cookie's full attributes. Caller holds j.mu.
func (j *Jar) save() error {
	names := make([]string, 0, len(j.saved))
	for name := range j.saved {
		names = append(names, name)
	}
	sort.Strings(names)

	persisted := make([]persistedCookie, len(names))
	for index, name := range names {
		cookie := j.saved[name]
		persisted[index] = persistedCookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Domain:   cookie.Domain,
			Expires:  cookie.Expires,
			Secure:   cookie.Secure,
			HTTPOnly: cookie.HttpOnly,
		}
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encoding cookies: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("session: creating %s: %w", filepath.Dir(j.path), err)
	}
	if err := os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("session: writing %s: %w", j.path, err)
	}
	return nil
}
