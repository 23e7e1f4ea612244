package cmd

import (
	"fmt"
	"os"

	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/djcass44/branchdiff/pkg/airutil"
	"github.com/djcass44/branchdiff/pkg/report"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// resolveSpec merges the flag defaults, the optional
// configuration file and any flags set by the user, in
// that order.
func resolveSpec(cmd *cobra.Command) (v1.ConfigSpec, error) {
	flags := cmd.Flags()

	spec := v1.ConfigSpec{}
	spec.Arch, _ = flags.GetString(flagArch)
	spec.BaseURL, _ = flags.GetString(flagBaseURL)
	spec.OutputDir, _ = flags.GetString(flagOutputDir)
	spec.Format, _ = flags.GetString(flagFormat)
	spec.Comparator, _ = flags.GetString(flagComparator)

	if configPath, _ := flags.GetString(flagConfig); configPath != "" {
		cfg, err := readConfig(configPath)
		if err != nil {
			return v1.ConfigSpec{}, fmt.Errorf("reading config: %w", err)
		}
		merge(&spec.Arch, cfg.Spec.Arch, flags.Changed(flagArch))
		merge(&spec.BaseURL, cfg.Spec.BaseURL, flags.Changed(flagBaseURL))
		merge(&spec.OutputDir, cfg.Spec.OutputDir, flags.Changed(flagOutputDir))
		merge(&spec.Format, cfg.Spec.Format, flags.Changed(flagFormat))
		merge(&spec.Comparator, cfg.Spec.Comparator, flags.Changed(flagComparator))
	}

	for _, s := range []*string{&spec.Arch, &spec.BaseURL, &spec.OutputDir} {
		val, err := airutil.ExpandEnv(*s)
		if err != nil {
			return v1.ConfigSpec{}, fmt.Errorf("expanding %q: %w", *s, err)
		}
		*s = val
	}

	switch spec.Format {
	case report.FormatJSON, report.FormatYAML:
	default:
		return v1.ConfigSpec{}, fmt.Errorf("unknown format: %s", spec.Format)
	}
	return spec, nil
}

// merge copies the value from the config file
// unless the flag was set explicitly.
func merge(dst *string, val string, changed bool) {
	if changed || val == "" {
		return
	}
	*dst = val
}

func readConfig(s string) (v1.Config, error) {
	f, err := os.Open(s)
	if err != nil {
		return v1.Config{}, err
	}
	defer f.Close()

	var config v1.Config
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&config); err != nil {
		return v1.Config{}, err
	}
	return config, nil
}
