package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractConfigPath(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"short flag", []string{"-f", "cfg.yaml", "serve"}, "cfg.yaml"},
		{"long flag", []string{"serve", "--config", "cfg.yaml"}, "cfg.yaml"},
		{"long flag inline", []string{"--config=cfg.yaml", "serve"}, "cfg.yaml"},
		{"no flag", []string{"list-tools"}, ""},
		{"call file flag is not the config", []string{"call", "-n", "create_post", "-f", "args.json"}, ""},
		{"config before call", []string{"-f", "cfg.yaml", "call", "-f", "args.json"}, "cfg.yaml"},
		{"long config inside call", []string{"call", "-n", "create_post", "--config", "cfg.yaml"}, "cfg.yaml"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expected, extractConfigPath(tc.args), "args %v", tc.args)
		})
	}
}
