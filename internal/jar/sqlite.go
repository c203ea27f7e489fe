package jar

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is a persistent jar backed by SQLite via modernc.org/sqlite
// (pure Go). Cookies survive process restarts; expired cookies are
// filtered on read and can be purged with Cleanup.
type SQLite struct {
	db *sql.DB
}

// Compile-time check that SQLite implements Jar.
var _ Jar = (*SQLite)(nil)

// Cookie is a stored cookie row, used by List for jar inspection.
type Cookie struct {
	Domain    string
	HostOnly  bool
	Path      string
	Name      string
	Value     string
	Secure    bool
	HTTPOnly  bool
	ExpiresAt time.Time // zero for session cookies
	CreatedAt time.Time
}

// NewSQLite opens (creating if needed) a SQLite-backed jar at dbPath.
// Use ":memory:" for testing.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("jar: open database: %w", err)
	}

	// Verify the connection works.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("jar: ping database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS cookies (
			id         TEXT PRIMARY KEY,
			domain     TEXT NOT NULL,
			host_only  INTEGER NOT NULL DEFAULT 1,
			path       TEXT NOT NULL DEFAULT '/',
			name       TEXT NOT NULL,
			value      TEXT NOT NULL,
			secure     INTEGER NOT NULL DEFAULT 0,
			http_only  INTEGER NOT NULL DEFAULT 0,
			expires_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(domain, path, name)
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("jar: create table: %w", err)
	}

	createIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_cookies_domain ON cookies(domain);
	`
	if _, err := db.Exec(createIndexSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("jar: create index: %w", err)
	}

	return &SQLite{db: db}, nil
}

// SetCookie parses one raw Set-Cookie value received for u and upserts
// it. A cookie whose Domain attribute does not cover the request host is
// rejected. An expired cookie (Max-Age<=0 or past Expires) deletes any
// stored cookie with the same key.
func (s *SQLite) SetCookie(ctx context.Context, u *url.URL, raw string) error {
	c, err := parseSetCookie(raw)
	if err != nil {
		return err
	}

	host := strings.ToLower(u.Hostname())

	domain := strings.ToLower(strings.TrimPrefix(c.Domain, "."))
	hostOnly := domain == ""
	if hostOnly {
		domain = host
	} else if host != domain && !strings.HasSuffix(host, "."+domain) {
		return fmt.Errorf("jar: cookie domain %q does not cover host %q", domain, host)
	}

	path := c.Path
	if path == "" || !strings.HasPrefix(path, "/") {
		path = defaultPath(u.Path)
	}

	now := time.Now().UTC()

	// Resolve expiry: Max-Age wins over Expires; zero means session.
	var expiresAt time.Time
	switch {
	case c.MaxAge > 0:
		expiresAt = now.Add(time.Duration(c.MaxAge) * time.Second)
	case c.MaxAge < 0:
		return s.delete(ctx, domain, path, c.Name)
	case !c.Expires.IsZero():
		expiresAt = c.Expires.UTC()
	}
	if !expiresAt.IsZero() && !expiresAt.After(now) {
		return s.delete(ctx, domain, path, c.Name)
	}

	var expiresVal interface{}
	if !expiresAt.IsZero() {
		expiresVal = expiresAt.Format(time.RFC3339)
	}

	query := `
		INSERT INTO cookies (id, domain, host_only, path, name, value, secure, http_only, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain, path, name) DO UPDATE SET
			value      = excluded.value,
			host_only  = excluded.host_only,
			secure     = excluded.secure,
			http_only  = excluded.http_only,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.New().String(),
		domain,
		boolInt(hostOnly),
		path,
		c.Name,
		c.Value,
		boolInt(c.Secure),
		boolInt(c.HttpOnly),
		expiresVal,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("jar: save cookie: %w", err)
	}
	return nil
}

// CookieString returns the matching cookie pairs for u joined with "; ",
// longest path first per RFC 6265 section 5.4.
func (s *SQLite) CookieString(ctx context.Context, u *url.URL) (string, error) {
	host := strings.ToLower(u.Hostname())
	domains := candidateDomains(host)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(domains)), ",")
	query := `
		SELECT domain, host_only, path, name, value, secure, expires_at, created_at
		FROM cookies WHERE domain IN (` + placeholders + `)`

	args := make([]interface{}, len(domains))
	for i, d := range domains {
		args[i] = d
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("jar: query cookies: %w", err)
	}
	defer rows.Close()

	type match struct {
		path      string
		name      string
		value     string
		createdAt string
	}

	now := time.Now().UTC()
	requestPath := u.Path
	if requestPath == "" {
		requestPath = "/"
	}
	secureURL := u.Scheme == "https"

	var matches []match
	for rows.Next() {
		var (
			m         match
			domain    string
			hostOnly  int
			secure    int
			expiresAt sql.NullString
		)
		if err := rows.Scan(&domain, &hostOnly, &m.path, &m.name, &m.value, &secure, &expiresAt, &m.createdAt); err != nil {
			return "", fmt.Errorf("jar: scan cookie row: %w", err)
		}
		if hostOnly == 1 && domain != host {
			continue
		}
		if secure == 1 && !secureURL {
			continue
		}
		if expiresAt.Valid {
			t, err := time.Parse(time.RFC3339, expiresAt.String)
			if err != nil || !t.After(now) {
				continue
			}
		}
		if !pathMatch(requestPath, m.path) {
			continue
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("jar: iterate rows: %w", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if len(matches[i].path) != len(matches[j].path) {
			return len(matches[i].path) > len(matches[j].path)
		}
		return matches[i].createdAt < matches[j].createdAt
	})

	pairs := make([]string, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, m.name+"="+m.value)
	}
	return strings.Join(pairs, "; "), nil
}

// List returns all stored cookies, newest first.
func (s *SQLite) List(ctx context.Context) ([]*Cookie, error) {
	query := `
		SELECT domain, host_only, path, name, value, secure, http_only, expires_at, created_at
		FROM cookies ORDER BY created_at DESC, domain, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("jar: list cookies: %w", err)
	}
	defer rows.Close()

	var cookies []*Cookie
	for rows.Next() {
		var (
			c         Cookie
			hostOnly  int
			secure    int
			httpOnly  int
			expiresAt sql.NullString
			createdAt string
		)
		if err := rows.Scan(&c.Domain, &hostOnly, &c.Path, &c.Name, &c.Value, &secure, &httpOnly, &expiresAt, &createdAt); err != nil {
			return nil, fmt.Errorf("jar: scan cookie row: %w", err)
		}
		c.HostOnly = hostOnly == 1
		c.Secure = secure == 1
		c.HTTPOnly = httpOnly == 1
		if expiresAt.Valid {
			if t, err := time.Parse(time.RFC3339, expiresAt.String); err == nil {
				c.ExpiresAt = t
			}
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			c.CreatedAt = t
		}
		cookies = append(cookies, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jar: iterate rows: %w", err)
	}
	return cookies, nil
}

// Clear removes every stored cookie.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cookies`); err != nil {
		return fmt.Errorf("jar: clear cookies: %w", err)
	}
	return nil
}

// Cleanup removes cookies that expired before now and returns how many
// were deleted. Session cookies are not touched.
func (s *SQLite) Cleanup(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Format(time.RFC3339)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE expires_at IS NOT NULL AND expires_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("jar: cleanup cookies: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("jar: rows affected: %w", err)
	}
	return deleted, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) delete(ctx context.Context, domain, path, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE domain = ? AND path = ? AND name = ?`, domain, path, name)
	if err != nil {
		return fmt.Errorf("jar: delete cookie: %w", err)
	}
	return nil
}

// candidateDomains returns host and every parent domain of it, e.g.
// "a.b.example.com" yields [a.b.example.com b.example.com example.com com].
func candidateDomains(host string) []string {
	domains := []string{host}
	for {
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
		if host == "" {
			break
		}
		domains = append(domains, host)
	}
	return domains
}

// defaultPath computes the cookie default-path for a request path per
// RFC 6265 section 5.1.4.
func defaultPath(requestPath string) string {
	if requestPath == "" || !strings.HasPrefix(requestPath, "/") {
		return "/"
	}
	i := strings.LastIndexByte(requestPath, '/')
	if i == 0 {
		return "/"
	}
	return requestPath[:i]
}

// pathMatch implements RFC 6265 section 5.1.4 path matching.
func pathMatch(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || requestPath[len(cookiePath)] == '/'
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
