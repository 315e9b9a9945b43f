package kv

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/pkg/errors"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DbName   string
	SslMode  string
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.DbName, c.Password, c.SslMode)
}

func ConnectDB(cfg Config) (*gorm.DB, error) {
	return ConnectDSN(cfg.DSN())
}

func ConnectDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "kv postgres: open")
	}
	if err := db.DB().Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "kv postgres: ping")
	}
	return db, nil
}

type Entry struct {
	Key       string `gorm:"primary_key;type:varchar(255)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "kv_entries" }

// Postgres stores each key as one row of kv_entries.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) (*Postgres, error) {
	if err := db.AutoMigrate(&Entry{}).Error; err != nil {
		return nil, errors.Wrap(err, "kv postgres: migrate")
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(key string) (string, bool, error) {
	var e Entry
	err := p.db.Where("key = ?", key).First(&e).Error
	if gorm.IsRecordNotFoundError(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "kv postgres: get %s", key)
	}
	return e.Value, true, nil
}

func (p *Postgres) Set(key, value string) error {
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&Entry{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(&Entry{Key: key, Value: value}).Error
		}
		return tx.Model(&Entry{}).
			Where("key = ?", key).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	})
	return errors.Wrapf(err, "kv postgres: set %s", key)
}

func (p *Postgres) Delete(key string) error {
	err := p.db.Where("key = ?", key).Delete(&Entry{}).Error
	return errors.Wrapf(err, "kv postgres: delete %s", key)
}
