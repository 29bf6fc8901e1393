package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"channel-insights/infrastructure/configuration"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      configuration.Db
		expected string
	}{
		{
			name:     "with credentials",
			cfg:      configuration.Db{Name: "insights", Host: "db", Port: "5432", User: "app", Password: "p@ss", SSLMode: "require"},
			expected: "postgres://app:p%40ss@db:5432/insights?sslmode=require",
		},
		{
			name:     "user without password",
			cfg:      configuration.Db{Name: "insights", Host: "localhost", Port: "5432", User: "app"},
			expected: "postgres://app@localhost:5432/insights?sslmode=disable",
		},
		{
			name:     "no user",
			cfg:      configuration.Db{Name: "insights", Host: "localhost", Port: "5433"},
			expected: "postgres://localhost:5433/insights?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, PostgresDSN(tt.cfg))
		})
	}
}
