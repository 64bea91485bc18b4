package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aidMatch/pkg/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "aid",
		Password: "pw",
		Name:     "aid_match",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5432 user=aid password=pw dbname=aid_match sslmode=disable", got)
}
