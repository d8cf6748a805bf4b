// Package mysqltest 为上层测试提供独立的SQLite内存库
package mysqltest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
)

var seq atomic.Int64

// NewDB 创建已迁移的内存库，测试结束时关闭
// 单连接：事务内外的调用共用同一个连接，不会互相锁表
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			SQLitePath:   fmt.Sprintf("file:mysqltest_%d?mode=memory&cache=shared", seq.Add(1)),
			MaxOpenConns: 1,
		},
	}
	db, err := mysql.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
