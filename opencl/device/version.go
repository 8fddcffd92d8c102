package device

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

var versionRegex = regexp.MustCompile(`OpenCL (\d+)\.(\d+)`)

// An opencl version as reported by CL_DEVICE_VERSION.
type Version struct {
	Major int
	Minor int
}

// Implements Stringer.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Return true if v is the same or a later version than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// Parse a version string of the form "OpenCL <major>.<minor> <vendor info>".
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, errors.Errorf("opencl device: unknown opencl version %q", s)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	return Version{Major: major, Minor: minor}, nil
}
