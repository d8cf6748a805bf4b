package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("无配置文件时使用默认值", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
		assert.Equal(t, "admin", cfg.Admin.Username)
	})

	t.Run("读取YAML并被环境变量覆盖", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
		yaml := "server:\n  port: 9090\ndatabase:\n  driver: mysql\n  host: db\n  port: 3306\n  user: u\n  password: p\n  dbname: catalog\n  charset: utf8mb4\n  parse_time: true\n  loc: Asia/Shanghai\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(yaml), 0o644))
		t.Chdir(dir)
		t.Setenv("BOOKCATALOG_DATABASE_PASSWORD", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, "u:secret@tcp(db:3306)/catalog?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", cfg.Database.DSN())
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "release"},
			Database: DatabaseConfig{Driver: DriverMySQL},
			JWT:      JWTConfig{Secret: "s3cr3t"},
			Admin:    AdminConfig{Username: "admin", Password: "pw"},
		}
	}

	assert.NoError(t, validate(base()))

	cfg := base()
	cfg.Server.Port = 0
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Database.Driver = "postgres"
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.JWT.Secret = defaultJWTSecret
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Admin.Password = ""
	assert.Error(t, validate(cfg))
}
