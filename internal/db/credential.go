package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DefaultPort is used when a connection string has no explicit port.
const DefaultPort = 5432

// Credential is the host/port/user/password/database tuple derived from a
// connection string. Password is nil when the string carried none (or an
// empty one), so the driver never receives an empty password.
type Credential struct {
	Host     string
	Port     int
	Database string
	User     string
	Password *string
	// Params holds the URL query parameters (sslmode, application_name, ...).
	Params map[string]string
}

// ParseConnectionString parses a postgres:// or postgresql:// URL.
func ParseConnectionString(connectionString string) (Credential, error) {
	raw := strings.TrimSpace(connectionString)
	if raw == "" {
		return Credential{}, fmt.Errorf("empty connection string")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Credential{}, err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return Credential{}, fmt.Errorf("unsupported scheme %q: expected postgres:// or postgresql://", u.Scheme)
	}

	cred := Credential{
		Host:     u.Hostname(),
		Port:     DefaultPort,
		Database: strings.TrimPrefix(u.Path, "/"),
	}

	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return Credential{}, fmt.Errorf("invalid port %q", port)
		}
		cred.Port = p
	}

	if u.User != nil {
		cred.User = u.User.Username()
		if password, ok := u.User.Password(); ok && password != "" {
			cred.Password = &password
		}
	}

	if q := u.Query(); len(q) > 0 {
		cred.Params = make(map[string]string, len(q))
		for k := range q {
			cred.Params[k] = q.Get(k)
		}
	}

	return cred, nil
}

// HasPassword reports whether the credential carries a password.
func (c Credential) HasPassword() bool {
	return c.Password != nil
}

// WithDatabase returns a copy of the credential scoped to another database.
// Host, port, user and password are shared.
func (c Credential) WithDatabase(database string) Credential {
	c.Database = database
	return c
}

// URL renders the credential back to a connection URL. The password is
// included only when redact is false.
func (c Credential) URL(redact bool) string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	switch {
	case c.Password != nil && redact:
		u.User = url.UserPassword(c.User, "xxxxx")
	case c.Password != nil:
		u.User = url.UserPassword(c.User, *c.Password)
	case c.User != "":
		u.User = url.User(c.User)
	}
	if len(c.Params) > 0 {
		q := url.Values{}
		for k, v := range c.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// String is safe to log.
func (c Credential) String() string {
	return c.URL(true)
}

// ConnConfig builds the pgx configuration for this credential.
func (c Credential) ConnConfig() (*pgx.ConnConfig, error) {
	return pgx.ParseConfig(c.URL(false))
}
