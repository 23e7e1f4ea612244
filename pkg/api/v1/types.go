package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	CategoryFirstNotSecond             = "first_not_second"
	CategorySecondNotFirst             = "second_not_first"
	CategoryVersionReleaseGreaterFirst = "version-release_greater_first"
)

// Package is a single binary package as returned by the
// /export/branch_binary_packages endpoint.
type Package struct {
	Name      string `json:"name"`
	Epoch     int64  `json:"epoch"`
	Version   string `json:"version"`
	Release   string `json:"release"`
	Arch      string `json:"arch"`
	Disttag   string `json:"disttag"`
	Buildtime int64  `json:"buildtime"`
	Source    string `json:"source"`
}

type RequestArgs struct {
	Arch *string `json:"arch"`
}

// BranchPackages is the response body of
// /export/branch_binary_packages/{branch}
type BranchPackages struct {
	RequestArgs RequestArgs `json:"request_args"`
	Length      int         `json:"length"`
	Packages    []Package   `json:"packages"`
}

// Snapshot maps an architecture to the packages
// built for it, keyed by package name.
type Snapshot map[string]map[string]Package

// Result maps an architecture to the packages
// collected in each category.
type Result map[string]map[string][]Package

type ConfigSpec struct {
	BaseURL    string `json:"baseURL,omitempty"`
	Arch       string `json:"arch,omitempty"`
	OutputDir  string `json:"outputDir,omitempty"`
	Format     string `json:"format,omitempty"`
	Comparator string `json:"comparator,omitempty"`
}

type Config struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ConfigSpec `json:"spec"`
}
