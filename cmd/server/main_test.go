package main

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"Screams/internal/config"
	"Screams/internal/core/screams"
	"Screams/internal/db/memory"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screams.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = "9000"

[store]
backend = "postgres"
postgres_url = "postgres://file"

[auth]
jwt_secret = "from-file"
`), 0o600))

	var got *config.Config
	a := app()
	a.Commands = []*cli.Command{{
		Name:  "probe",
		Flags: serveCmd().Flags,
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			got = cfg
			return err
		},
	}}

	err := a.Run([]string{"screams", "--config", path, "probe", "--port", "9999", "--store", "memory", "--rate-window", "30s"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "9999", got.Server.Port)
	assert.Equal(t, config.BackendMemory, got.Store.Backend)
	assert.Equal(t, "postgres://file", got.Store.PostgresURL)
	assert.Equal(t, "from-file", got.Auth.JWTSecret)
	assert.Equal(t, 30*time.Second, got.RateLimit.Window)
}

func TestTokenCmd_PrintsToken(t *testing.T) {
	var out bytes.Buffer
	a := app()
	a.Writer = &out

	err := a.Run([]string{"screams", "token", "--handle", "alice", "--jwt-secret", "s3cret"})
	require.NoError(t, err)

	token := strings.TrimSpace(out.String())
	assert.Equal(t, 2, strings.Count(token, "."), "expected a JWT, got %q", token)
}

func TestTokenCmd_RequiresSecret(t *testing.T) {
	t.Setenv("SCREAMS_JWT_SECRET", "")
	a := app()
	a.Writer = &bytes.Buffer{}
	a.ErrWriter = &bytes.Buffer{}

	err := a.Run([]string{"screams", "token", "--handle", "alice"})
	assert.Error(t, err)
}

func TestSeed_CountersMatchRecords(t *testing.T) {
	ctx := context.Background()
	service := screams.NewService(memory.NewScreamRepository(), nil)

	stats, err := seed(ctx, service, rand.New(rand.NewSource(42)), 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.screams)

	list, err := service.ListScreams(ctx)
	require.NoError(t, err)
	require.Len(t, list, 10)

	var comments, likes int
	for _, s := range list {
		view, err := service.GetScream(ctx, s.ID)
		require.NoError(t, err)
		assert.Len(t, view.Comments, view.CommentCount)
		comments += view.CommentCount
		likes += view.LikeCount
	}
	assert.Equal(t, stats.comments, comments)
	assert.Equal(t, stats.likes, likes)
}
