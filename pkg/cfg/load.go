package cfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
)

const (
	formatTOML = ".toml"
	formatHCL  = ".hcl"
)

// ContextFromFile reads a context configuration file. The format is
// determined by the file extension, ".toml" and ".hcl" files are supported.
// The returned Context is neither resolved nor validated.
func ContextFromFile(path string) (*Context, error) {
	var config *Context
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case formatTOML:
		config, err = contextFromTOMLFile(path)
	case formatHCL:
		config, err = contextFromHCLFile(path)
	default:
		return nil, fmt.Errorf("%s: unsupported file extension %q, must be %s or %s", path, ext, formatTOML, formatHCL)
	}

	if err != nil {
		return nil, err
	}

	config.filePath = path

	return config, nil
}

func contextFromTOMLFile(path string) (*Context, error) {
	var config Context

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	err = dec.Decode(&config)
	if err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			return nil, fmt.Errorf("%s: %s", path, decErr.String())
		}

		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%s: unknown fields:\n%s", path, strictErr.String())
		}

		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &config, nil
}

func contextFromHCLFile(path string) (*Context, error) {
	var config Context

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL file %s failed: %w", path, diags)
	}

	diags = gohcl.DecodeBody(file.Body, hclEvalContext(), &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decoding HCL file %s failed: %w", path, diags)
	}

	return &config, nil
}

// hclEvalContext returns the evaluation context for HCL context files.
// Environment variables are accessible as map via the "env" variable, e.g.
// env.GOOGLE_PROJECT or env["GOOGLE_PROJECT"].
func hclEvalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	env := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		env = cty.MapVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// Load reads the context configuration from path, resolves all values with
// resolver, applies defaults and validates the result.
func Load(path string, resolver Resolver) (*Context, error) {
	config, err := ContextFromFile(path)
	if err != nil {
		return nil, err
	}

	if err := config.Resolve(resolver); err != nil {
		return nil, fmt.Errorf("%s: resolving configuration values failed: %w", path, err)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: validation failed: %w", path, err)
	}

	return config, nil
}
