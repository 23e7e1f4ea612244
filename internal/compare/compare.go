package compare

import (
	"context"
	"fmt"

	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/djcass44/branchdiff/pkg/reconcile"
	"github.com/djcass44/branchdiff/pkg/report"
	"github.com/djcass44/branchdiff/pkg/snapshot"
	"github.com/djcass44/branchdiff/pkg/version"
	"github.com/go-logr/logr"
)

// Fetcher retrieves the binary packages of a branch.
type Fetcher interface {
	BranchBinaryPackages(ctx context.Context, branch, arch string) (*v1.BranchPackages, error)
}

type Options struct {
	Branch1    string
	Branch2    string
	Arch       string
	OutputDir  string
	Format     string
	Comparator version.Comparator
}

type Runner struct {
	fetcher Fetcher
}

func NewRunner(fetcher Fetcher) *Runner {
	return &Runner{fetcher: fetcher}
}

// Compare fetches both branches one after the other
// and reconciles them.
func (r *Runner) Compare(ctx context.Context, opts Options) (v1.Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	first, err := r.load(ctx, opts.Branch1, opts.Arch)
	if err != nil {
		return nil, err
	}
	second, err := r.load(ctx, opts.Branch2, opts.Arch)
	if err != nil {
		return nil, err
	}

	cmp := opts.Comparator
	if cmp == nil {
		cmp = version.ComparatorFunc(version.IsGreater)
	}

	log.Info("comparing branches", "first", opts.Branch1, "second", opts.Branch2)
	result := reconcile.Compare(ctx, first, second, cmp)
	summary := reconcile.Summary(result)
	for _, arch := range reconcile.Archs(result) {
		counts := summary[arch]
		log.V(1).Info("architecture summary", "arch", arch,
			v1.CategoryFirstNotSecond, counts[v1.CategoryFirstNotSecond],
			v1.CategorySecondNotFirst, counts[v1.CategorySecondNotFirst],
			v1.CategoryVersionReleaseGreaterFirst, counts[v1.CategoryVersionReleaseGreaterFirst],
		)
	}
	return result, nil
}

// Run compares the branches and writes the report,
// returning the path that was written.
func (r *Runner) Run(ctx context.Context, opts Options) (string, error) {
	log := logr.FromContextOrDiscard(ctx)

	result, err := r.Compare(ctx, opts)
	if err != nil {
		return "", err
	}

	path := report.Name(opts.OutputDir, opts.Branch1, opts.Branch2, opts.Format)
	log.Info("exporting comparison", "path", path)
	if err := report.Write(ctx, path, result, opts.Format); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Runner) load(ctx context.Context, branch, arch string) (v1.Snapshot, error) {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("fetching branch", "branch", branch)

	doc, err := r.fetcher.BranchBinaryPackages(ctx, branch, arch)
	if err != nil {
		return nil, fmt.Errorf("fetching branch %s: %w", branch, err)
	}
	s, err := snapshot.New(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("reading branch %s: %w", branch, err)
	}
	log.V(1).Info("loaded branch", "branch", branch, "archs", snapshot.Archs(s), "count", snapshot.Len(s))
	return s, nil
}
