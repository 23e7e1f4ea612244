package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"

	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
)

var ErrInvalidPackage = errors.New("invalid package")

// New groups the packages of a branch by architecture and
// then by name. If a name appears more than once for the
// same architecture, the last record wins.
func New(ctx context.Context, doc *v1.BranchPackages) (v1.Snapshot, error) {
	log := logr.FromContextOrDiscard(ctx)

	out := v1.Snapshot{}
	if doc == nil {
		return out, nil
	}
	for i, p := range doc.Packages {
		if p.Name == "" || p.Arch == "" {
			return nil, fmt.Errorf("%w: record %d is missing a name or arch", ErrInvalidPackage, i)
		}
		names, ok := out[p.Arch]
		if !ok {
			names = map[string]v1.Package{}
			out[p.Arch] = names
		}
		if existing, ok := names[p.Name]; ok {
			log.V(5).Info("replacing duplicate package", "name", p.Name, "arch", p.Arch, "old", existing.Version+"-"+existing.Release, "new", p.Version+"-"+p.Release)
		}
		names[p.Name] = p
	}
	log.V(1).Info("built package lookup", "archs", len(out), "count", Len(out))
	return out, nil
}

// Archs returns the architectures of s sorted alphabetically.
func Archs(s v1.Snapshot) []string {
	archs := maps.Keys(s)
	sort.Strings(archs)
	return archs
}

// Len returns the number of packages across all architectures.
func Len(s v1.Snapshot) int {
	var n int
	for _, names := range s {
		n += len(names)
	}
	return n
}
