package repo

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// У каждого теста своя именованная БД, чтобы данные не пересекались.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	c := NewConnector(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	db, err := c.DB()
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return db
}
