package reconcile

import (
	"context"
	"sort"

	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/djcass44/branchdiff/pkg/version"
	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
)

// Compare produces the full comparison of branch a against branch b.
//
// Only the a -> b direction checks version-release ordering, packages
// that are newer in b are not reported.
func Compare(ctx context.Context, a, b v1.Snapshot, cmp version.Comparator) v1.Result {
	result := v1.Result{}
	FirstNotSecond(ctx, a, b, v1.CategoryFirstNotSecond, result, cmp)
	FirstNotSecond(ctx, b, a, v1.CategorySecondNotFirst, result, nil)
	Sort(result)
	return result
}

// FirstNotSecond records every package from b1 that is missing from b2
// under label. If cmp is not nil, packages present in both branches
// whose version-release in b1 is greater are recorded under
// v1.CategoryVersionReleaseGreaterFirst.
func FirstNotSecond(ctx context.Context, b1, b2 v1.Snapshot, label string, result v1.Result, cmp version.Comparator) {
	log := logr.FromContextOrDiscard(ctx).WithValues("label", label)

	for arch, names := range b1 {
		others, ok := b2[arch]
		if !ok {
			log.V(2).Info("architecture is missing from the second branch", "arch", arch, "count", len(names))
			for _, p := range names {
				add(result, arch, label, p)
			}
			continue
		}

		for name, p := range names {
			other, ok := others[name]
			if !ok {
				log.V(6).Info("package is missing from the second branch", "arch", arch, "name", name)
				add(result, arch, label, p)
				continue
			}
			if cmp == nil {
				continue
			}
			if cmp.IsGreater(p.Version, p.Release, other.Version, other.Release) {
				log.V(6).Info("package is newer in the first branch", "arch", arch, "name", name, "first", p.Version+"-"+p.Release, "second", other.Version+"-"+other.Release)
				add(result, arch, v1.CategoryVersionReleaseGreaterFirst, p)
			}
		}
	}
}

func add(result v1.Result, arch, category string, p v1.Package) {
	categories, ok := result[arch]
	if !ok {
		categories = map[string][]v1.Package{}
		result[arch] = categories
	}
	categories[category] = append(categories[category], p)
}

// Sort orders the packages in every category by name
// so that the result does not depend on map iteration.
func Sort(result v1.Result) {
	for _, categories := range result {
		for _, packages := range categories {
			sort.SliceStable(packages, func(i, j int) bool {
				return packages[i].Name < packages[j].Name
			})
		}
	}
}

// Summary counts the packages in each category of each architecture.
func Summary(result v1.Result) map[string]map[string]int {
	out := make(map[string]map[string]int, len(result))
	for arch, categories := range result {
		counts := make(map[string]int, len(categories))
		for category, packages := range categories {
			counts[category] = len(packages)
		}
		out[arch] = counts
	}
	return out
}

// Archs returns the architectures of result sorted alphabetically.
func Archs(result v1.Result) []string {
	archs := maps.Keys(result)
	sort.Strings(archs)
	return archs
}
