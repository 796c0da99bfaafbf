package db

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/logger"
	"github.com/techagentng/clubcore/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := Migrate(g.DB); err != nil {
		logger.Fatal("unable to run migrations", zap.Error(err))
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	logger.Info("connecting to postgres",
		zap.String("host", c.PostgresHost),
		zap.Int("port", c.PostgresPort),
		zap.String("db", c.PostgresDB))

	gormConfig := &gorm.Config{TranslateError: true}
	if c.Env != "prod" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: c.PostgresDSN(),
	}), gormConfig)
	if err != nil {
		logger.Fatal("unable to connect to postgres", zap.Error(err))
	}

	return gormDB
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.Team{},
		&models.DirectConversation{},
		&models.DirectMessage{},
		&models.GroupConversation{},
		&models.ConversationMember{},
		&models.GroupMessage{},
		&models.GroupSeenStatus{},
		&models.CalendarEvent{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	return nil
}

// ErrDuplicate is returned by repositories when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate record")

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsNotFound reports whether err comes from a lookup that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
