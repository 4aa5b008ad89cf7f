package server_test

import (
	"testing"
	"time"

	"equipment-validator/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Timeouts(t *testing.T) {
	tests := []struct {
		name  string
		cfg   server.Config
		read  time.Duration
		write time.Duration
	}{
		{"Defaults", server.Config{}, 30 * time.Second, 60 * time.Second},
		{"Configured", server.Config{ReadTimeoutSeconds: 5, WriteTimeoutSeconds: 7}, 5 * time.Second, 7 * time.Second},
		{"Negative", server.Config{ReadTimeoutSeconds: -1, WriteTimeoutSeconds: -1}, 30 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.read, tt.cfg.ReadTimeout())
			assert.Equal(t, tt.write, tt.cfg.WriteTimeout())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":9090", server.Config{Port: "9090"}.Address())
}
