package test

import (
	"testing"

	"letlang/host"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Host returns a host for tests that logs through t and is closed when the test
// ends.
func Host(t *testing.T) host.Host {
	return HostWithArgs(t, host.HostArgs{})
}

func HostWithArgs(t *testing.T, args host.HostArgs) host.Host {
	h, err := host.CreateWithLogger(zaptest.NewLogger(t), &args)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h
}
