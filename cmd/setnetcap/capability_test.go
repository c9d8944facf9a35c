package main

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/pkg/xattr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/gocapability/capability"
)

func TestCapSpecString(t *testing.T) {
	assert.Equal(t, "CAP_NET_BIND_SERVICE=+eip", netBindService.String())
	assert.Equal(t, "CAP_NET_RAW=+ep", capSpec{capability.CAP_NET_RAW, capability.EFFECTIVE | capability.PERMITTED}.String())
}

type fakeCaps struct {
	capability.Capabilities
	held map[capability.CapType]bool
}

func (f fakeCaps) Get(which capability.CapType, what capability.Cap) bool {
	return what == capability.CAP_NET_BIND_SERVICE && f.held[which]
}

func TestCapSpecSatisfiedBy(t *testing.T) {
	all := fakeCaps{held: map[capability.CapType]bool{
		capability.EFFECTIVE:   true,
		capability.INHERITABLE: true,
		capability.PERMITTED:   true,
	}}
	assert.True(t, netBindService.satisfiedBy(all))

	noInheritable := fakeCaps{held: map[capability.CapType]bool{
		capability.EFFECTIVE: true,
		capability.PERMITTED: true,
	}}
	assert.False(t, netBindService.satisfiedBy(noInheritable))
	assert.True(t, capSpec{capability.CAP_NET_BIND_SERVICE, capability.EFFECTIVE | capability.PERMITTED}.satisfiedBy(noInheritable))
}

// rootTempFile returns a file on a filesystem that takes
// security.capability, or skips the test.
func rootTempFile(t *testing.T) string {
	if os.Geteuid() != 0 {
		t.Skip("writing file capabilities requires root")
	}
	p := filepath.Join(t.TempDir(), "server_bin")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0755))
	return p
}

func TestVfsCapSetterAppliesAndReplaces(t *testing.T) {
	p := rootTempFile(t)

	c, err := capability.NewFile2(p)
	require.NoError(t, err)
	require.NoError(t, c.Load())
	c.Set(capability.CAPS, capability.CAP_NET_RAW)
	if err := c.Apply(capability.CAPS); err != nil {
		t.Skipf("filesystem does not take file capabilities: %v", err)
	}

	require.NoError(t, vfsCapSetter{}.SetFileCaps(p, netBindService))

	raw, err := getxattr(p, capabilityAttr)
	require.NoError(t, err)
	require.NotNil(t, raw)

	got, err := capability.NewFile2(p)
	require.NoError(t, err)
	require.NoError(t, got.Load())
	assert.True(t, netBindService.satisfiedBy(got))
	assert.False(t, got.Get(capability.PERMITTED, capability.CAP_NET_RAW), "prior capabilities must be replaced")

	// A second run yields the same attribute.
	require.NoError(t, vfsCapSetter{}.SetFileCaps(p, netBindService))
	again, err := getxattr(p, capabilityAttr)
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}

func TestVfsCapSetterMissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "absent")

	err := vfsCapSetter{}.SetFileCaps(p, netBindService)

	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.ENOENT)
}

func countCapgets(t *testing.T) *int {
	calls := 0
	old := holdsSetfcap
	t.Cleanup(func() { holdsSetfcap = old })
	holdsSetfcap = func() bool {
		calls++
		return false
	}
	return &calls
}

func TestVfsCapSetterInspectsOnlyWhenTracing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "absent")
	calls := countCapgets(t)

	buf := withTraceGate(t, filepath.Join(t.TempDir(), ".trace"))
	require.False(t, setTrace())
	assert.Error(t, vfsCapSetter{}.SetFileCaps(p, netBindService))
	assert.Zero(t, *calls)
	assert.Empty(t, buf.String())

	gate := filepath.Join(t.TempDir(), ".trace")
	require.NoError(t, os.WriteFile(gate, nil, 0600))
	traceGate = gate
	require.True(t, setTrace())
	assert.Error(t, vfsCapSetter{}.SetFileCaps(p, netBindService))
	assert.Equal(t, 1, *calls)
	assert.Contains(t, buf.String(), "process holds CAP_SETFCAP: false")
	assert.Contains(t, buf.String(), "had capability attribute: false")
}

func xattrErrno(err error) syscall.Errno {
	var xerr *xattr.Error
	if errors.As(err, &xerr) {
		if errno, ok := xerr.Err.(syscall.Errno); ok {
			return errno
		}
	}
	return 0
}

func TestGetxattrAbsent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(p, nil, 0644))

	data, err := getxattr(p, "user.setnetcap.absent")
	if errno := xattrErrno(err); errno == syscall.ENOTSUP {
		t.Skipf("filesystem has no extended attributes: %v", err)
	}
	require.NoError(t, err)
	assert.Nil(t, data)
}
