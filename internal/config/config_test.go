package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "lz-load", c.LoadAttribute())
	assert.Equal(t, "lz-load-src", c.SrcAttribute())
	assert.Equal(t, "x-data", c.DataAttribute())
	assert.Equal(t, "x-ignore", c.RootAttribute)
	assert.Equal(t, "immediate", c.DefaultStrategy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty prefix", func(c *Config) { c.Prefix = "" }, "prefix must not be empty"},
		{"empty host prefix", func(c *Config) { c.HostPrefix = "" }, "host prefix must not be empty"},
		{"empty root attribute", func(c *Config) { c.RootAttribute = "" }, "root attribute must not be empty"},
		{"colliding prefixes", func(c *Config) { c.HostPrefix = c.Prefix }, "collides"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSrcAttribute_Override(t *testing.T) {
	c := Default()
	c.InlineAttribute = "data-module-src"
	assert.Equal(t, "data-module-src", c.SrcAttribute())
}

func TestEventName(t *testing.T) {
	c := Default()
	assert.Equal(t, "lz-load-7", c.EventName("7"))
	assert.Equal(t, "lz-load-cart", c.EventName("cart"))

	c.Prefix = "defer-"
	assert.Equal(t, "defer-load-7", c.EventName("7"))
}

func TestComponentName(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"card()", "card"},
		{"card({ open: true })", "card"},
		{"card", "card"},
		{"  card ()", "card"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ComponentName(tt.expr), "expr %q", tt.expr)
	}
}
