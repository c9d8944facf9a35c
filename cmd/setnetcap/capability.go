package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/syndtr/gocapability/capability"
)

// capSpec names one capability and the file capability sets it goes into.
type capSpec struct {
	Cap  capability.Cap
	Sets capability.CapType
}

// netBindService is the only grant this program ever applies.
var netBindService = capSpec{
	Cap:  capability.CAP_NET_BIND_SERVICE,
	Sets: capability.EFFECTIVE | capability.INHERITABLE | capability.PERMITTED,
}

// String renders the grant in setcap(8) syntax, for example
// CAP_NET_BIND_SERVICE=+eip.
func (s capSpec) String() string {
	flags := ""
	if s.Sets&capability.EFFECTIVE != 0 {
		flags += "e"
	}
	if s.Sets&capability.INHERITABLE != 0 {
		flags += "i"
	}
	if s.Sets&capability.PERMITTED != 0 {
		flags += "p"
	}
	return fmt.Sprintf("CAP_%s=+%s", strings.ToUpper(s.Cap.String()), flags)
}

// satisfiedBy reports whether caps carries the capability in every set.
func (s capSpec) satisfiedBy(caps capability.Capabilities) bool {
	for _, which := range []capability.CapType{capability.EFFECTIVE, capability.INHERITABLE, capability.PERMITTED} {
		if s.Sets&which == 0 {
			continue
		}
		if !caps.Get(which, s.Cap) {
			return false
		}
	}
	return true
}

type fileCapSetter interface {
	SetFileCaps(path string, spec capSpec) error
}

// vfsCapSetter writes security.capability through the kernel, replacing
// whatever file capabilities were there, and then reads it back.
type vfsCapSetter struct{}

func (vfsCapSetter) SetFileCaps(path string, spec capSpec) error {
	if tracing {
		trace("process holds CAP_SETFCAP: %t", holdsSetfcap())
		prior, err := getxattr(path, capabilityAttr)
		trace("%s had capability attribute: %t (%v)", path, prior != nil, err)
	}

	c, err := capability.NewFile2(path)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	if err := c.Load(); err != nil {
		return errors.Wrap(err, "failed to load capabilities")
	}

	c.Clear(capability.CAPS)
	c.Set(spec.Sets, spec.Cap)
	trace("applying %s (%s) to %s", spec, c.StringCap(capability.CAPS), path)

	if err := c.Apply(capability.CAPS); err != nil {
		return errors.Wrap(err, "failed to apply capabilities")
	}

	return verifyFileCaps(path, spec)
}

// verifyFileCaps reads the attribute back from disk and checks that it
// grants spec.
func verifyFileCaps(path string, spec capSpec) error {
	raw, err := getxattr(path, capabilityAttr)
	if err != nil {
		return errors.Wrap(err, "failed to verify capabilities")
	}
	if raw == nil {
		return errors.New("capability attribute missing after apply")
	}

	c, err := capability.NewFile2(path)
	if err != nil {
		return errors.Wrap(err, "failed to reopen file")
	}
	if err := c.Load(); err != nil {
		return errors.Wrap(err, "failed to reload capabilities")
	}
	if !spec.satisfiedBy(c) {
		return errors.Errorf("%s not in effect, found %q", spec, c.StringCap(capability.CAPS))
	}
	return nil
}
