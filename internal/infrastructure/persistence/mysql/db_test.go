package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var dbSeq atomic.Int64

// newTestDB 每个测试一个独立的SQLite内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			SQLitePath:   fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", dbSeq.Add(1)),
			MaxOpenConns: 1,
		},
	}
	db, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}, zap.NewNop())
	require.Error(t, err)
}

func TestDatabaseError(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = NewAuthorRepository(db).FindByID(context.Background(), 1)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
	assert.NotNil(t, appErr.Unwrap())
}

func TestSQLiteUnicodeLower(t *testing.T) {
	sqlDB, err := newTestDB(t).DB()
	require.NoError(t, err)

	var lowered string
	require.NoError(t, sqlDB.QueryRow("SELECT LOWER(?)", "ÉCOLE Straße").Scan(&lowered))
	assert.Equal(t, "école straße", lowered)

	var null sql.NullString
	require.NoError(t, sqlDB.QueryRow("SELECT LOWER(NULL)").Scan(&null))
	assert.False(t, null.Valid)
}
