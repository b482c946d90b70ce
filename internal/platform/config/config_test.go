package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadPoolSettings(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_MAX_IDLE_CONNS", "10")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "7")

	Load()

	assert.Equal(t, 40, AppConfig.DBMaxOpenConns)
	assert.Equal(t, 10, AppConfig.DBMaxIdleConns)
	assert.Equal(t, 7*time.Minute, AppConfig.DBConnMaxLifetime)
}
