package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Owenun/Windy/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func intPtr(v int) *int { return &v }

// logEntries 按ID升序返回全部操作日志
func logEntries(t *testing.T, db *gorm.DB) []model.LogEntry {
	t.Helper()
	var entries []model.LogEntry
	require.NoError(t, db.WithContext(context.Background()).Order("id").Find(&entries).Error)
	return entries
}

// decodeMessage 解析变更说明
func decodeMessage(t *testing.T, raw string) []map[string]map[string]interface{} {
	t.Helper()
	var msg []map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	return msg
}
