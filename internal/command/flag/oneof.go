package flag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/set"
)

// OneOf is a command line flag that accepts one of multiple possible values.
type OneOf struct {
	Val       string
	supported set.Set[string]
	flagName  string
	usage     string
}

func NewOneOfFlag(flagName, defaultVal, usage string, supportedVals ...string) *OneOf {
	for _, v := range supportedVals {
		if !isLower(v) {
			panic(fmt.Sprintf("oneOf flag values must be lowercase, got: %q", v))
		}
	}

	return &OneOf{
		flagName:  flagName,
		Val:       defaultVal,
		supported: set.From(supportedVals),
		usage:     usage,
	}
}

func (f *OneOf) Set(val string) error {
	sl := strings.ToLower(val)
	if !f.supported.Contains(sl) {
		return fmt.Errorf("%s must be one of: %s",
			f.flagName, strings.Join(set.Sorted(f.supported), ", "))
	}

	f.Val = sl
	return nil
}

func (f *OneOf) Value() string {
	return f.Val
}

func (f *OneOf) String() string {
	return f.Val
}

func (f *OneOf) Type() string {
	return strings.ToUpper(f.flagName)
}

func (f *OneOf) Usage(highlightFn func(a ...any) string) string {
	vals := set.Sorted(f.supported)
	for i, v := range vals {
		vals[i] = highlightFn(v)
	}

	return f.usage + "\none of: " + strings.Join(vals, ", ")
}

func (f *OneOf) RegisterFlagCompletion(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(f.flagName, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return set.Sorted(f.supported), cobra.ShellCompDirectiveNoFileComp
	})
}

func isLower(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}
