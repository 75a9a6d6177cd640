package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "30", "-i", "200000", "-f", "cert.pem", "-k", "key.pem",
			},
			expected: &Config{
				Addr:           "127.0.0.1:9090",
				DatabaseDSN:    "db",
				SecretKey:      "secret",
				TokenValidity:  30 * time.Minute,
				HashIterations: 200000,
				CertFile:       "cert.pem",
				KeyFile:        "key.pem",
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"cmd", "-a", ":9000", "-z", "junk"},
			expected: &Config{
				Addr:          ":9000",
				TokenValidity: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
