// internal/vault/vault.go
//
// Vault client wrapper.
//
// Context
// -------
// Secrets in the configuration tree may be written as references of the
// form `vault:mount/path#key` instead of literal values.  The config
// loader resolves those references through this wrapper before the tree
// is unmarshalled, so the rest of the app only ever sees plain strings.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx)                      // during boot, lazily.
//  2. val, err := cli.GetKV(ctx, "kv/wowsites", "brevo_api_key")
//  3. val, err := cli.Resolve(ctx, "vault:kv/wowsites#brevo_api_key")
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// RefPrefix marks a config value as a Vault reference.
const RefPrefix = "vault:"

// cacheTTL bounds how long a resolved secret may be served from the
// in-process cache.
const cacheTTL = 5 * time.Minute

// IsRef reports whether a config value is a Vault reference.
func IsRef(v string) bool { return strings.HasPrefix(v, RefPrefix) }

// Client is safe for concurrent use.  Create once at startup.  The zero
// value is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // "path#key" → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a client from the environment and starts a background
// token-renewal loop tied to ctx.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	c := &Client{api: apiCli, cache: make(map[string]cached)}
	go c.renewLoop(ctx)
	return c, nil
}

// Resolve expands a `vault:mount/path#key` reference.  Non-reference
// values are returned unchanged so callers can pass every config value
// through it.
func (c *Client) Resolve(ctx context.Context, v string) (string, error) {
	if !IsRef(v) {
		return v, nil
	}
	ref := strings.TrimPrefix(v, RefPrefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q (want vault:mount/path#key)", v)
	}
	return c.GetKV(ctx, path, key)
}

// GetKV fetches a single key from a KV-v2 secret, serving repeats from
// a short-lived cache.
func (c *Client) GetKV(ctx context.Context, secretPath, key string) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key
	c.cacheMu.RLock()
	if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
		c.cacheMu.RUnlock()
		return cv.val, nil
	}
	c.cacheMu.RUnlock()

	mount, rel, _ := strings.Cut(secretPath, "/")
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	c.cacheMu.Lock()
	c.cache[canonical] = cached{val: sval, exp: time.Now().Add(cacheTTL)}
	c.cacheMu.Unlock()
	return sval, nil
}

// renewLoop keeps the token alive.  Renewal failures back off and
// retry; a non-renewable token simply lengthens the probe interval.
func (c *Client) renewLoop(ctx context.Context) {
	interval := 30 * time.Second
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}

		sec, err := c.api.Auth().Token().RenewSelf(0)
		switch {
		case err != nil:
			interval = 30 * time.Second
		case sec == nil || sec.Auth == nil || !sec.Auth.Renewable:
			interval = time.Hour
		default:
			// Renew again at half the granted lease.
			interval = time.Duration(sec.Auth.LeaseDuration) * time.Second / 2
			if interval < 15*time.Second {
				interval = 15 * time.Second
			}
		}
	}
}
