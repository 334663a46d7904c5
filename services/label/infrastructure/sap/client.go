// Package sap implements the item and tree lookups against the SAP Business
// One Service Layer.
package sap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/bomlabel/pkg/cache"
	"github.com/ghuser/bomlabel/pkg/config"
	"github.com/ghuser/bomlabel/pkg/logger"
	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
)

const (
	sessionCookie   = "B1SESSION"
	maxErrorBodyLen = 512
)

// Config holds Service Layer connection settings.
type Config struct {
	BaseURL     string
	CompanyDB   string
	Username    string
	Password    string
	InsecureTLS bool
	Timeout     time.Duration
}

// ConfigFromApp extracts the Service Layer settings from the application config.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		BaseURL:     cfg.SAPServerURL,
		CompanyDB:   cfg.SAPCompanyDB,
		Username:    cfg.SAPUsername,
		Password:    cfg.SAPPassword,
		InsecureTLS: cfg.SAPInsecureTLS,
		Timeout:     cfg.SAPFetchTimeout,
	}
}

// Client is a Service Layer client holding one login session.
// It is safe for concurrent use.
type Client struct {
	cfg      Config
	http     *http.Client
	sessions SessionStore
	now      func() time.Time
	log      logger.Logger

	loginMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.sessions = s }
}

// WithClock replaces time.Now for session expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient returns a Client for cfg. It does not log in until the first request.
func NewClient(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "base url")
	}
	if cfg.CompanyDB == "" {
		missing = append(missing, "company db")
	}
	if cfg.Username == "" {
		missing = append(missing, "username")
	}
	if cfg.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("sap client: missing %s", strings.Join(missing, ", "))
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		sessions: NewMemorySessionStore(),
		now:      time.Now,
		log:      log.With("component", "sap"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	CompanyDB string `json:"CompanyDB"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
}

type loginResponse struct {
	SessionID      string `json:"SessionId"`
	SessionTimeout int    `json:"SessionTimeout"`
}

// Ping ensures the client holds a valid session, logging in if needed.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.session(ctx, false)
	return err
}

// session returns a valid session, logging in when the stored one is missing,
// expired or force is set.
func (c *Client) session(ctx context.Context, force bool) (*cache.SAPSession, error) {
	c.loginMu.Lock()
	defer c.loginMu.Unlock()

	if !force {
		s, err := c.sessions.Get(ctx)
		if err != nil {
			c.log.WarnContext(ctx, "session store read failed", "error", err)
		} else if !s.Expired(c.now()) {
			return s, nil
		}
	}

	s, err := c.login(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Set(ctx, s); err != nil {
		c.log.WarnContext(ctx, "session store write failed", "error", err)
	}
	return s, nil
}

func (c *Client) login(ctx context.Context) (*cache.SAPSession, error) {
	body, err := json.Marshal(loginRequest{
		CompanyDB: c.cfg.CompanyDB,
		UserName:  c.cfg.Username,
		Password:  c.cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/Login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: login: %w", labeldomain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: login returned status %d: %s", labeldomain.ErrUpstream, resp.StatusCode, readErrorBody(resp.Body))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("%w: decode login response: %w", labeldomain.ErrUpstream, err)
	}
	if lr.SessionID == "" {
		return nil, fmt.Errorf("%w: login response has no session id", labeldomain.ErrUpstream)
	}

	c.log.InfoContext(ctx, "sap login", "company_db", c.cfg.CompanyDB, "session_timeout_min", lr.SessionTimeout)
	return &cache.SAPSession{
		ID:        lr.SessionID,
		ExpiresAt: c.now().Add(time.Duration(lr.SessionTimeout) * time.Minute),
	}, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
// A 401 drops the session and retries once with a fresh login.
func (c *Client) get(ctx context.Context, path string, out any) error {
	s, err := c.session(ctx, false)
	if err != nil {
		return err
	}

	resp, err := c.doGet(ctx, path, s)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.log.InfoContext(ctx, "sap session rejected, logging in again", "path", path)
		if err := c.sessions.Delete(ctx); err != nil {
			c.log.WarnContext(ctx, "session store delete failed", "error", err)
		}
		if s, err = c.session(ctx, true); err != nil {
			return err
		}
		if resp, err = c.doGet(ctx, path, s); err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return labeldomain.ErrItemNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: GET %s returned status %d: %s", labeldomain.ErrUpstream, path, resp.StatusCode, readErrorBody(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", labeldomain.ErrUpstream, path, err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, s *cache.SAPSession) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: s.ID})

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: GET %s: %w", labeldomain.ErrUpstream, path, err)
	}
	return resp, nil
}

func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyLen))
	return strings.TrimSpace(string(b))
}
