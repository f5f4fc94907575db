// Package resolver provides implementations of cfg.Resolver.
package resolver

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

const (
	envFunc   = "env"
	envOrFunc = "envOr"

	configDirVar = "ConfigDir"
)

// GoTemplate resolves Go template expressions in strings.
// The following functions are available:
//   - env NAME: value of the environment variable NAME, fails if it is undefined,
//   - envOr NAME DEFAULT: value of the environment variable NAME or DEFAULT.
//
// The variable .ConfigDir contains the directory of the configuration file.
type GoTemplate struct {
	templateVars map[string]string
	lookupEnv    func(string) (string, bool)
	funcMap      template.FuncMap
}

// NewGoTemplate returns a GoTemplate resolver that reads environment
// variables from the process environment.
func NewGoTemplate(configDir string) *GoTemplate {
	return NewGoTemplateWithEnv(configDir, os.LookupEnv)
}

// NewGoTemplateWithEnv returns a GoTemplate resolver that uses lookupEnv to
// retrieve environment variables.
func NewGoTemplateWithEnv(configDir string, lookupEnv func(string) (string, bool)) *GoTemplate {
	result := &GoTemplate{
		lookupEnv: lookupEnv,
		templateVars: map[string]string{
			configDirVar: configDir,
		},
	}

	result.funcMap = template.FuncMap{
		envFunc:   result.env,
		envOrFunc: result.envOr,
	}

	return result
}

func (s *GoTemplate) env(name string) (string, error) {
	val, exist := s.lookupEnv(name)
	if !exist {
		return "", fmt.Errorf("environment variable %q is undefined", name)
	}

	return val, nil
}

func (s *GoTemplate) envOr(name, defaultVal string) string {
	val, exist := s.lookupEnv(name)
	if !exist {
		return defaultVal
	}

	return val
}

// Resolve evaluates in as Go template.
func (s *GoTemplate) Resolve(in string) (string, error) {
	if !strings.Contains(in, "{{") {
		return in, nil
	}

	t, err := template.New("ciconf").Funcs(s.funcMap).Option("missingkey=error").Parse(in)
	if err != nil {
		return "", fmt.Errorf("failed parsing go template: %w", err)
	}

	output := new(bytes.Buffer)
	if err = t.Execute(output, s.templateVars); err != nil {
		return "", fmt.Errorf("failed evaluating template: %w", err)
	}

	return output.String(), nil
}
