package ci

import (
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"os"
	"strings"
)

type Decision int

const (
	// DecisionBuild means the commit is not a release tag and must be built.
	DecisionBuild Decision = iota
	// DecisionSkipTag means the commit is a release tag.
	DecisionSkipTag
	// DecisionSkipNoCI means the tag variable is not set at all.
	DecisionSkipNoCI
)

func (d Decision) ShouldBuild() bool {
	return d == DecisionBuild
}

func (d Decision) String() string {
	switch d {
	case DecisionBuild:
		return "build"
	case DecisionSkipTag:
		return "skip-tag"
	case DecisionSkipNoCI:
		return "skip-no-ci"
	default:
		return "unknown"
	}
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

var OSLookup LookupFunc = os.LookupEnv

// Decide compares the tag variable to the non-tag sentinel. The comparison
// ignores case only.
func Decide(lookup LookupFunc, c conf.CI) Decision {
	value, ok := lookup(c.TagVariable)
	if !ok {
		return DecisionSkipNoCI
	}
	if strings.EqualFold(value, c.NonTagValue) {
		return DecisionBuild
	}
	return DecisionSkipTag
}
