// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `<root>/conf/.env` dotenv file.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `WOWSITES_`, where `__` maps to “.”
     (e.g., `WOWSITES_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, any string value carrying the `vault:` prefix is resolved
through the Vault client, the tree is unmarshalled into strongly-typed
structs, validated, enriched with the runtime root path, and cached in
an `atomic.Pointer` for lock-free reads.  `Reload()` calls `Load()`
again and swaps the pointer.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`,
    so `go run ./cmd/web` works from any sub-directory.
  • The Vault client is constructed lazily, only when at least one
    reference is present in the merged tree.
  • Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface on the bootstrap console before the file logger exists.
*/
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/vault"
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves WOWSITES_ROOT or climbs directories until
// conf/global.yaml is found.  Falls back to the executable heuristic
// for the production layout.
func rootDir() string {
	if r := os.Getenv("WOWSITES_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves Vault references,
// validates, and caches the Config.
func Load(ctx context.Context) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}

	// Env overrides: WOWSITES_SITE__BASE_DOMAIN → site.base_domain
	if err := k.Load(env.Provider("WOWSITES_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if err := resolveVaultRefs(ctx, k); err != nil {
		zap.S().Errorw("config vault resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"base_domain", cfg.Site.BaseDomain,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// resolveVaultRefs rewrites every `vault:` value in the merged tree in
// place.  The Vault client is only constructed when the first reference
// is encountered, so deployments without Vault never touch it.
func resolveVaultRefs(ctx context.Context, k *koanf.Koanf) error {
	var cli *vault.Client
	for _, key := range k.Keys() {
		val, ok := k.Get(key).(string)
		if !ok || !vault.IsRef(val) {
			continue
		}
		if cli == nil {
			var err error
			if cli, err = vault.New(ctx); err != nil {
				return err
			}
		}
		resolved, err := cli.Resolve(ctx, val)
		if err != nil {
			return err
		}
		if err := k.Set(key, resolved); err != nil {
			return err
		}
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context) error { _, err := Load(ctx); return err }
