package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions_Defaults(t *testing.T) {
	t.Setenv(passwordEnv, "")

	opts, err := parseOptions(nil)
	require.NoError(t, err)

	assert.Equal(t, "admin", opts.username)
	assert.Empty(t, opts.server)
	assert.Equal(t, 10*time.Second, opts.timeout)
	assert.Zero(t, opts.watch)
}

func TestParseOptions_PasswordFromEnv(t *testing.T) {
	t.Setenv(passwordEnv, "secret")

	opts, err := parseOptions([]string{"-server", "localhost:8086", "-watch", "30s"})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8086", opts.server)
	assert.Equal(t, "secret", opts.password)
	assert.Equal(t, 30*time.Second, opts.watch)

	opts, err = parseOptions([]string{"-p", "flag-wins"})
	require.NoError(t, err)
	assert.Equal(t, "flag-wins", opts.password)
}

func TestParseOptions_UnknownFlag(t *testing.T) {
	_, err := parseOptions([]string{"-nope"})
	assert.Error(t, err)
}
