package server_test

import (
	"testing"
	"time"

	"lunar-assistant/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"PortOnly", "8080", ":8080"},
		{"HostAndPort", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"LeadingColon", ":7000", ":7000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_Timeouts(t *testing.T) {
	c := server.Config{ReadTimeoutSeconds: 15, WriteTimeoutSeconds: 120}
	assert.Equal(t, 15*time.Second, c.ReadTimeout())
	assert.Equal(t, 2*time.Minute, c.WriteTimeout())
	assert.Zero(t, server.Config{}.ReadTimeout())
}
