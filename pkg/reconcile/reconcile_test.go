package reconcile

import (
	"context"
	"testing"

	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/djcass44/branchdiff/pkg/version"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkg(arch, name, ver, rel string) v1.Package {
	return v1.Package{Name: name, Version: ver, Release: rel, Arch: arch}
}

func snapshotOf(packages ...v1.Package) v1.Snapshot {
	s := v1.Snapshot{}
	for _, p := range packages {
		if _, ok := s[p.Arch]; !ok {
			s[p.Arch] = map[string]v1.Package{}
		}
		s[p.Arch][p.Name] = p
	}
	return s
}

func names(packages []v1.Package) []string {
	out := make([]string, 0, len(packages))
	for _, p := range packages {
		out = append(out, p.Name)
	}
	return out
}

func TestCompare(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	dotted, err := version.ParseComparator(version.ComparatorDotted)
	require.NoError(t, err)

	t.Run("second branch is newer", func(t *testing.T) {
		a := snapshotOf(pkg("x86_64", "foo", "1.2.3", "alt1"))
		b := snapshotOf(pkg("x86_64", "foo", "1.2.10", "alt1"))

		result := Compare(ctx, a, b, dotted)
		assert.Empty(t, result)
	})
	t.Run("first branch is newer", func(t *testing.T) {
		a := snapshotOf(pkg("x86_64", "foo", "1.2.10", "alt1"))
		b := snapshotOf(pkg("x86_64", "foo", "1.2.3", "alt1"))

		result := Compare(ctx, a, b, dotted)
		require.Contains(t, result, "x86_64")
		assert.EqualValues(t, []string{"foo"}, names(result["x86_64"][v1.CategoryVersionReleaseGreaterFirst]))
		assert.NotContains(t, result["x86_64"], v1.CategoryFirstNotSecond)
		assert.NotContains(t, result["x86_64"], v1.CategorySecondNotFirst)
	})
	t.Run("identical packages are not reported", func(t *testing.T) {
		a := snapshotOf(pkg("x86_64", "foo", "1.0", "alt1"))
		b := snapshotOf(pkg("x86_64", "foo", "1.0", "alt1"))

		result := Compare(ctx, a, b, dotted)
		assert.Empty(t, result)
	})
	t.Run("architecture only in first branch", func(t *testing.T) {
		a := snapshotOf(
			pkg("x86_64", "foo", "1.0", "alt1"),
			pkg("i586", "foo", "2.0", "alt1"),
			pkg("i586", "bar", "2.0", "alt1"),
		)
		b := snapshotOf(pkg("x86_64", "foo", "1.0", "alt1"))

		result := Compare(ctx, a, b, dotted)
		require.Contains(t, result, "i586")
		assert.EqualValues(t, []string{"bar", "foo"}, names(result["i586"][v1.CategoryFirstNotSecond]))
		assert.NotContains(t, result["i586"], v1.CategoryVersionReleaseGreaterFirst)
		assert.NotContains(t, result, "x86_64")
	})
	t.Run("architecture only in second branch", func(t *testing.T) {
		a := snapshotOf(pkg("x86_64", "foo", "1.0", "alt1"))
		b := snapshotOf(
			pkg("x86_64", "foo", "1.0", "alt1"),
			pkg("aarch64", "foo", "1.0", "alt1"),
			pkg("aarch64", "baz", "1.0", "alt1"),
		)

		result := Compare(ctx, a, b, dotted)
		require.Contains(t, result, "aarch64")
		assert.EqualValues(t, []string{"baz", "foo"}, names(result["aarch64"][v1.CategorySecondNotFirst]))
		assert.NotContains(t, result["aarch64"], v1.CategoryFirstNotSecond)
		assert.NotContains(t, result["aarch64"], v1.CategoryVersionReleaseGreaterFirst)
	})
	t.Run("packages missing on either side", func(t *testing.T) {
		a := snapshotOf(
			pkg("noarch", "only-a", "1.0", "alt1"),
			pkg("noarch", "shared", "1.0", "alt2"),
		)
		b := snapshotOf(
			pkg("noarch", "only-b", "1.0", "alt1"),
			pkg("noarch", "shared", "1.0", "alt1"),
		)

		result := Compare(ctx, a, b, dotted)
		assert.EqualValues(t, []string{"only-a"}, names(result["noarch"][v1.CategoryFirstNotSecond]))
		assert.EqualValues(t, []string{"only-b"}, names(result["noarch"][v1.CategorySecondNotFirst]))
		assert.EqualValues(t, []string{"shared"}, names(result["noarch"][v1.CategoryVersionReleaseGreaterFirst]))
	})
	t.Run("newer packages in the second branch are not reported", func(t *testing.T) {
		a := snapshotOf(pkg("noarch", "shared", "1.0", "alt1"))
		b := snapshotOf(pkg("noarch", "shared", "1.0", "alt2"))

		result := Compare(ctx, a, b, dotted)
		assert.Empty(t, result)
	})
}

func TestFirstNotSecond(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	a := snapshotOf(pkg("x86_64", "foo", "2.0", "alt1"), pkg("x86_64", "bar", "1.0", "alt1"))
	b := snapshotOf(pkg("x86_64", "foo", "1.0", "alt1"))

	t.Run("version check disabled", func(t *testing.T) {
		result := v1.Result{}
		FirstNotSecond(ctx, a, b, "custom", result, nil)
		assert.EqualValues(t, []string{"bar"}, names(result["x86_64"]["custom"]))
		assert.NotContains(t, result["x86_64"], v1.CategoryVersionReleaseGreaterFirst)
	})
	t.Run("version check enabled", func(t *testing.T) {
		result := v1.Result{}
		FirstNotSecond(ctx, a, b, "custom", result, version.ComparatorFunc(version.IsGreater))
		assert.EqualValues(t, []string{"bar"}, names(result["x86_64"]["custom"]))
		assert.EqualValues(t, []string{"foo"}, names(result["x86_64"][v1.CategoryVersionReleaseGreaterFirst]))
	})
}

func TestSummary(t *testing.T) {
	result := v1.Result{
		"x86_64": {
			v1.CategoryFirstNotSecond: {pkg("x86_64", "foo", "1", "alt1"), pkg("x86_64", "bar", "1", "alt1")},
			v1.CategorySecondNotFirst: {pkg("x86_64", "baz", "1", "alt1")},
		},
	}
	assert.EqualValues(t, map[string]map[string]int{
		"x86_64": {
			v1.CategoryFirstNotSecond: 2,
			v1.CategorySecondNotFirst: 1,
		},
	}, Summary(result))
}

func TestArchs(t *testing.T) {
	result := v1.Result{
		"x86_64":  {},
		"aarch64": {},
		"noarch":  {},
		"i586":    {},
	}
	// sorting must not depend on map iteration
	for i := 0; i < 10; i++ {
		assert.EqualValues(t, []string{"aarch64", "i586", "noarch", "x86_64"}, Archs(result))
	}
	assert.Empty(t, Archs(v1.Result{}))
}
