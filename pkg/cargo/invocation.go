package cargo

import (
	"fmt"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"strings"
)

type Profile string

const (
	Debug   Profile = consts.ProfileDebug
	Release Profile = consts.ProfileRelease
)

// Profiles is the order the CI step builds in.
var Profiles = []Profile{Debug, Release}

func (p Profile) ToString() string {
	return string(p)
}

// Invocation describes one external process run.
type Invocation struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Name)
	for _, arg := range inv.Args {
		if strings.ContainsAny(arg, " \t") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Plan renders the build invocation for a profile.
func Plan(c conf.Cargo, profile Profile) Invocation {
	args := []string{"build"}
	if len(c.Features) > 0 {
		args = append(args, "--features", strings.Join(c.Features, " "))
	}
	if len(c.Target) > 0 {
		args = append(args, "--target", c.Target)
	}
	if profile == Release {
		args = append(args, "--release")
	}
	args = append(args, c.ExtraArgs...)

	return Invocation{
		Name: c.Command,
		Args: args,
		Dir:  c.WorkDir,
	}
}
