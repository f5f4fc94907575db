package command

import (
	"errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/format/table"
	"github.com/simplesurance/ciconf/internal/prettyprint"
	"github.com/simplesurance/ciconf/pkg/check"
)

const validateLongHelp = `
Load the context configuration, generate the project tree and verify it.

The following properties are checked:
- every build type uses a clean checkout,
- IDs are unique in the whole tree,
- IDs only contain allowed characters,
- build types only reference registered VCS roots,
- snapshot dependencies reference existing build types.

If a check fails, the command exits with code 2.
`

const maxPrintedViolatingIDs = 10

func init() {
	rootCmd.AddCommand(&newValidateCmd().Command)
}

type validateCmd struct {
	cobra.Command

	contextPath string
}

func newValidateCmd() *validateCmd {
	cmd := validateCmd{
		Command: cobra.Command{
			Use:   "validate",
			Short: "verify the context configuration and the generated project tree",
			Long:  strings.TrimSpace(validateLongHelp),
			Args:  cobra.NoArgs,
		},
	}

	cmd.Run = cmd.run

	addContextFlag(&cmd.Command, &cmd.contextPath)

	return &cmd
}

func (c *validateCmd) run(_ *cobra.Command, _ []string) {
	cfgCtx := mustLoadContext(c.contextPath)
	root := mustBuildRootProject(cfgCtx)

	var failed []error

	formatter := table.New(nil, stdout)
	for _, chk := range checksFunc() {
		err := chk.Fn(root)
		if err != nil {
			failed = append(failed, err)
		}

		mustWriteRow(formatter, chk.Name, term.ColoredCheckResult(err))
	}
	exitOnErr(formatter.Flush())

	if len(failed) > 0 {
		var ids []string
		for _, err := range failed {
			printViolations(err)
			ids = append(ids, violatingIDs(err)...)
		}

		slices.Sort(ids)
		ids = slices.Compact(ids)

		stderr.Printf("\n%d elements violate checks: %s\n",
			len(ids), prettyprint.TruncatedStrSlice(ids, maxPrintedViolatingIDs),
		)

		exitFunc(exitCodeValidationFailed)
		return
	}

	stdout.Printf("\nValidated %d build types in %d projects, no violations found\n",
		len(root.AllBuildTypes()), len(root.AllProjects()),
	)
}

// printViolations writes every error contained in err to stderr, errors
// created by errors.Join are printed one per line.
func printViolations(err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printViolations(e)
		}
		return
	}

	stderr.Printf("%s %s\n", term.RedHighlight("violation:"), err)
}

// violatingIDs returns the IDs of all check.ViolationErrors contained in err.
func violatingIDs(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var res []string
		for _, e := range joined.Unwrap() {
			res = append(res, violatingIDs(e)...)
		}
		return res
	}

	var verr *check.ViolationError
	if errors.As(err, &verr) {
		return []string{verr.ID}
	}

	return nil
}
