package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoMigrateEnabled(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug mode migrates by default", "debug", false, true},
		{"release mode skips migration", "release", false, false},
		{"release mode with force flag migrates", "release", true, true},
		{"debug mode with force flag migrates", "debug", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{ForceMigrate: tc.force}
			cfg.Server.Mode = tc.mode
			assert.Equal(t, tc.want, cfg.AutoMigrateEnabled())
		})
	}
}
