package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"cedra_storefront/internal/session"
)

// Options configure le client unique vers l'API amont
type Options struct {
	BaseURL     string
	Store       session.Store
	Navigator   Navigator
	Headers     map[string]string
	Transport   http.RoundTripper
	Development bool
}

// Client est le seul point de sortie HTTP. Pas de retry, pas de timeout propre :
// seul le contexte de l'appelant borne un appel.
type Client struct {
	baseURL     string
	headers     http.Header
	store       session.Store
	navigator   Navigator
	base        http.RoundTripper
	http        *http.Client
	development bool
}

func NewClient(opts Options) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		headers:     headers,
		store:       opts.Store,
		navigator:   opts.Navigator,
		base:        base,
		development: opts.Development,
	}
	c.http = &http.Client{Transport: &bearerTransport{store: opts.Store, base: base}}
	return c
}

// WithSession renvoie une copie liée au store et au navigateur d'une autre session
func (c *Client) WithSession(store session.Store, nav Navigator) *Client {
	cp := *c
	cp.store = store
	cp.navigator = nav
	cp.http = &http.Client{Transport: &bearerTransport{store: store, base: c.base}}
	return &cp
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do envoie la requête avec le jeton de la session s'il existe
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.send(ctx, c.http, req, out)
}

// doWithToken force un jeton précis au lieu de celui de la session
func (c *Client) doWithToken(ctx context.Context, token, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	hc := &http.Client{Transport: &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   c.base,
	}}
	return c.send(ctx, hc, req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	return req, nil
}

func (c *Client) send(ctx context.Context, hc *http.Client, req *http.Request, out interface{}) error {
	resp, err := hc.Do(req)
	if err != nil {
		c.logError(req, 0, err)
		return fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return parseErrorBody(resp.StatusCode, data)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseErrorBody(resp.StatusCode, data)
		c.logError(req, resp.StatusCode, apiErr)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

// handleUnauthorized vide la session et renvoie vers /login, sauf si on y est déjà
func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.store != nil {
		if err := c.store.Remove(ctx, session.KeyToken); err != nil {
			log.Printf("⚠️ Impossible de supprimer le token: %v", err)
		}
		if err := c.store.Remove(ctx, session.KeyUser); err != nil {
			log.Printf("⚠️ Impossible de supprimer l'utilisateur: %v", err)
		}
	}
	if c.navigator != nil && c.navigator.CurrentPath() != LoginPath {
		c.navigator.Navigate(LoginPath)
	}
}

func (c *Client) logError(req *http.Request, status int, err error) {
	if !c.development {
		return
	}
	log.Printf("❌ API %s %s (%d): %v", req.Method, req.URL.Path, status, err)
}

// bearerTransport injecte le jeton de session ; les DELETE le portent aussi en _auth
// car certains serveurs perdent l'en-tête sur ce verbe.
type bearerTransport struct {
	store session.Store
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := ""
	if t.store != nil {
		tok, err := t.store.Get(req.Context(), session.KeyToken)
		if err != nil && !errors.Is(err, session.ErrNotFound) {
			log.Printf("⚠️ Lecture token impossible: %v", err)
		}
		token = tok
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}

	if req.Method == http.MethodDelete {
		req = req.Clone(req.Context())
		q := req.URL.Query()
		q.Set("_auth", token)
		req.URL.RawQuery = q.Encode()
	}

	rt := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   t.base,
	}
	return rt.RoundTrip(req)
}
