package version

import (
	"errors"
	"fmt"

	debversion "github.com/knqyf263/go-deb-version"
	"github.com/sassoftware/go-rpmutils"
)

const (
	ComparatorDotted = "dotted"
	ComparatorRPM    = "rpm"
	ComparatorDeb    = "deb"
)

var ErrUnknownComparator = errors.New("unknown comparator")

// Comparator decides whether one version-release is
// newer than another.
type Comparator interface {
	IsGreater(version1, release1, version2, release2 string) bool
}

type ComparatorFunc func(version1, release1, version2, release2 string) bool

func (f ComparatorFunc) IsGreater(version1, release1, version2, release2 string) bool {
	return f(version1, release1, version2, release2)
}

// ParseComparator returns the Comparator registered under
// the given name. An empty name selects the dotted comparator.
func ParseComparator(name string) (Comparator, error) {
	switch name {
	case "", ComparatorDotted:
		return ComparatorFunc(IsGreater), nil
	case ComparatorRPM:
		return ComparatorFunc(rpmIsGreater), nil
	case ComparatorDeb:
		return ComparatorFunc(debIsGreater), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownComparator, name)
	}
}

func rpmIsGreater(version1, release1, version2, release2 string) bool {
	if c := rpmutils.Vercmp(version1, version2); c != 0 {
		return c > 0
	}
	return rpmutils.Vercmp(release1, release2) > 0
}

func debIsGreater(version1, release1, version2, release2 string) bool {
	v1, err := debversion.NewVersion(joinRelease(version1, release1))
	if err != nil {
		return false
	}
	v2, err := debversion.NewVersion(joinRelease(version2, release2))
	if err != nil {
		return false
	}
	return v1.GreaterThan(v2)
}

func joinRelease(version, release string) string {
	if release == "" {
		return version
	}
	return version + "-" + release
}
