package airutil

import "github.com/drone/envsubst"

// ExpandEnv substitutes ${VAR} style references in s
// with values from the environment.
func ExpandEnv(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return envsubst.EvalEnv(s)
}
