package rdb

import "github.com/santhosh-tekuri/jsonschema/v5"

// branchPackagesSchema describes the parts of the
// branch_binary_packages response that we rely on.
const branchPackagesSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["packages"],
	"properties": {
		"packages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "version", "release", "arch"],
				"properties": {
					"name": {"type": "string"},
					"version": {"type": "string"},
					"release": {"type": "string"},
					"arch": {"type": "string"}
				}
			}
		}
	}
}`

var branchPackages = jsonschema.MustCompileString("branch_binary_packages.json", branchPackagesSchema)
