package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	t.Run("with password", func(t *testing.T) {
		got := dsn("app", "s3cret", "db.internal", "3306", "cinema")
		assert.Equal(t, "app:s3cret@tcp(db.internal:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC", got)
	})
	t.Run("passwordless drops the colon", func(t *testing.T) {
		got := dsn("root", "", "localhost", "3306", "cinema")
		assert.Equal(t, "root@tcp(localhost:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC", got)
	})
	t.Run("time handling params are always present", func(t *testing.T) {
		got := dsn("u", "p", "h", "1", "d")
		assert.Contains(t, got, "parseTime=true")
		assert.Contains(t, got, "loc=UTC")
	})
}
