package pipeline

import (
	"slices"

	"golang.org/x/exp/maps"
)

// ParamKind describes how the CI server displays and stores a parameter.
type ParamKind int

const (
	ParamText ParamKind = iota
	// ParamHidden parameters are not shown in the build parameter dialog.
	ParamHidden
	// ParamPassword parameters are hidden and their values are masked in
	// build logs.
	ParamPassword
)

func (k ParamKind) String() string {
	switch k {
	case ParamText:
		return "text"
	case ParamHidden:
		return "hidden"
	case ParamPassword:
		return "password"
	default:
		return "undefined"
	}
}

// Param is the value of a project or build configuration parameter.
type Param struct {
	Value       string
	Description string
	Kind        ParamKind
}

// Params maps parameter names to their definitions.
type Params map[string]Param

// Text sets a plain text parameter.
func (p Params) Text(name, value string) {
	p[name] = Param{Value: value, Kind: ParamText}
}

// Hidden sets a parameter that is not shown in the parameter dialog.
func (p Params) Hidden(name, value, description string) {
	p[name] = Param{Value: value, Description: description, Kind: ParamHidden}
}

// Password sets a parameter whose value is masked.
func (p Params) Password(name, value, description string) {
	p[name] = Param{Value: value, Description: description, Kind: ParamPassword}
}

// Names returns the parameter names in lexical order.
func (p Params) Names() []string {
	names := maps.Keys(p)
	slices.Sort(names)

	return names
}
