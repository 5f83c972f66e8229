package repo

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"SecondChance/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ConnectionError — не удалось открыть или проверить соединение с БД.
type ConnectionError struct {
	DSN string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Connector лениво открывает единственный *gorm.DB и переиспользует его.
// Ошибка первого подключения запоминается и не ретраится.
type Connector struct {
	dsn  string
	once sync.Once
	db   *gorm.DB
	err  error
}

func NewConnector(dsn string) *Connector {
	return &Connector{dsn: dsn}
}

// DB возвращает общий хендл, при первом вызове подключается и прогоняет миграции.
func (c *Connector) DB() (*gorm.DB, error) {
	c.once.Do(func() {
		c.db, c.err = InitDB(c.dsn)
	})
	return c.db, c.err
}

// Close закрывает пул, если он был открыт.
func (c *Connector) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitDB открывает БД по DSN (postgres или sqlite) и применяет AutoMigrate.
func InitDB(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, &ConnectionError{DSN: dsn, Err: errors.New("empty dsn")}
	}

	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: newGormLogger(gormLogWriter()),
	})
	if err != nil {
		return nil, &ConnectionError{DSN: dsn, Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{DSN: dsn, Err: err}
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{DSN: dsn, Err: err}
	}

	if err := db.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// newGormLogger пишет предупреждения gorm в w (в сервере это zap).
// Ненайденная запись — обычный исход поиска, в лог не попадает.
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// gormLogWriter направляет вывод gorm в глобальный zap-логгер уровнем Warn.
func gormLogWriter() logger.Writer {
	w, err := zap.NewStdLogAt(zap.L(), zap.WarnLevel)
	if err != nil {
		return zap.NewStdLog(zap.L())
	}
	return w
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func dialector(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	// pure-go драйвер modernc.org/sqlite регистрируется под именем "sqlite"
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

// isUniqueViolation — нарушение уникального индекса/первичного ключа.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pg *pgconn.PgError
	if errors.As(err, &pg) && pg.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
