package main

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func TestRun_PortInUse(t *testing.T) {
	held, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer held.Close()

	port := held.Addr().(*net.TCPAddr).Port
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("LOG_LEVEL", "FATAL")
	t.Setenv("STORE_BACKEND", "memory")

	err = run()

	require.Error(t, err)
	assert.ErrorContains(t, err, "server failed")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("PORT", "70000")

	err := run()

	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid config")
}

func TestRun_UnsupportedBackend(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "FATAL")
	t.Setenv("STORE_BACKEND", "etcd")

	err := run()

	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid config")
}
