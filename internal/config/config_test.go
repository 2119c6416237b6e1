package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPublic = `topics_per_page: 20
posts_per_page: 2
reply_preview_posts: 5
jwt_ttl: 1h
password_reset_ttl: 72h
site_url: http://localhost:8080
http:
  addr: ":8080"
session:
  backend: memory
  ttl: 24h
`

const validPrivate = `jwt_key: secret
pg:
  host: localhost
  port: 5432
  user: boards
  password: pass
  dbname: boards
`

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "PG_PASSWORD", "PG_HOST", "PG_PORT"} {
		t.Setenv(key, "")
	}
	cfg := MustLoad(writeConfig(t, validPublic, validPrivate))

	assert.Equal(t, 20, cfg.Public.TopicsPerPage)
	assert.Equal(t, 2, cfg.Public.PostsPerPage)
	assert.Equal(t, 5, cfg.Public.ReplyPreviewPosts)
	assert.Equal(t, time.Hour, cfg.JwtTTL())
	assert.Equal(t, 72*time.Hour, cfg.Public.PasswordResetTTL)
	assert.Equal(t, "memory", cfg.Public.Session.Backend)
	assert.Equal(t, "secret", cfg.JwtKey())
	assert.Equal(t, "localhost", cfg.Private.Pg.Host)
	assert.Equal(t, 5432, cfg.Private.Pg.Port)
}

func TestMustLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PG_PASSWORD", "env-pass")
	t.Setenv("PG_PORT", "6543")

	cfg := MustLoad(writeConfig(t, validPublic, validPrivate))

	assert.Equal(t, "from-env", cfg.JwtKey())
	assert.Equal(t, "env-pass", cfg.Private.Pg.Password)
	assert.Equal(t, 6543, cfg.Private.Pg.Port)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Run("missing folder", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope")) })
	})

	t.Run("missing required field", func(t *testing.T) {
		public := "posts_per_page: 2\nreply_preview_posts: 5\njwt_ttl: 1h\npassword_reset_ttl: 1h\nsite_url: x\nhttp:\n  addr: ':80'\nsession:\n  backend: memory\n  ttl: 1h\n"
		assert.Panics(t, func() { MustLoad(writeConfig(t, public, validPrivate)) })
	})

	t.Run("unknown session backend", func(t *testing.T) {
		public := strings.Replace(validPublic, "backend: memory", "backend: memcached", 1)
		assert.Panics(t, func() { MustLoad(writeConfig(t, public, validPrivate)) })
	})

	t.Run("redis backend without address", func(t *testing.T) {
		public := strings.Replace(validPublic, "backend: memory", "backend: redis", 1)
		assert.Panics(t, func() { MustLoad(writeConfig(t, public, validPrivate)) })
	})

	t.Run("unknown key", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(writeConfig(t, validPublic+"threads_per_page: 3\n", validPrivate)) })
	})
}
