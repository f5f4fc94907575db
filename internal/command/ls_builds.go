package command

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/flag"
	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/log"
	"github.com/simplesurance/ciconf/pkg/pipeline"
)

const (
	lsBuildsIDHeader           = "ID"
	lsBuildsIDParam            = "id"
	lsBuildsNameHeader         = "Name"
	lsBuildsNameParam          = "name"
	lsBuildsProjectHeader      = "Project"
	lsBuildsProjectParam       = "project"
	lsBuildsVCSRootHeader      = "VCS Root"
	lsBuildsVCSRootParam       = "vcs-root"
	lsBuildsCheckoutHeader     = "Checkout"
	lsBuildsCheckoutParam      = "checkout"
	lsBuildsTriggersHeader     = "Triggers"
	lsBuildsTriggersParam      = "triggers"
	lsBuildsDependenciesHeader = "Dependencies"
	lsBuildsDependenciesParam  = "dependencies"
)

const lsBuildsExamples = `
ciconf ls builds                                   list all build types
ciconf ls builds --filter 'GOOGLE_BETA_*'          list build types with IDs starting with GOOGLE_BETA_
ciconf ls builds --filter '**/GOOGLE_BETA_VCR/*'   list the build types of the GOOGLE_BETA_VCR project
ciconf ls builds -f id,checkout --format csv       list IDs and checkout mode in CSV format
`

func init() {
	lsCmd.AddCommand(&newLsBuildsCmd().Command)
}

type lsBuildsCmd struct {
	cobra.Command

	contextPath string
	quiet       bool
	filters     []string
	format      *flag.OneOf
	fields      *flag.Fields
}

func newLsBuildsCmd() *lsBuildsCmd {
	cmd := lsBuildsCmd{
		Command: cobra.Command{
			Use:     "builds",
			Short:   "list build types",
			Example: strings.TrimSpace(lsBuildsExamples),
			Args:    cobra.NoArgs,
		},
		format: flag.NewFormatFlag(),
		fields: flag.NewFields([]string{
			lsBuildsIDParam,
			lsBuildsNameParam,
			lsBuildsProjectParam,
			lsBuildsVCSRootParam,
			lsBuildsCheckoutParam,
			lsBuildsTriggersParam,
			lsBuildsDependenciesParam,
		}),
	}

	cmd.Run = cmd.run
	cmd.PreRun = cmd.preRun

	addContextFlag(&cmd.Command, &cmd.contextPath)

	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)

	cmd.Flags().VarP(cmd.fields, "fields", "f", cmd.fields.Usage(term.Highlight))

	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"suppress printing a header in plain and csv format")

	cmd.Flags().StringArrayVar(&cmd.filters, "filter", nil,
		"only list build types whose ID or path (PROJECT/.../BUILD-ID) matches the glob pattern,\n"+
			"patterns support ** and can be passed multiple times")

	return &cmd
}

func (c *lsBuildsCmd) preRun(_ *cobra.Command, _ []string) {
	for _, f := range c.filters {
		if !doublestar.ValidatePattern(f) {
			fatalf("invalid --filter pattern %q", f)
		}
	}
}

func (c *lsBuildsCmd) createHeader() []string {
	headers := make([]string, 0, len(c.fields.Fields))

	for _, f := range c.fields.Fields {
		switch f {
		case lsBuildsIDParam:
			headers = append(headers, lsBuildsIDHeader)
		case lsBuildsNameParam:
			headers = append(headers, lsBuildsNameHeader)
		case lsBuildsProjectParam:
			headers = append(headers, lsBuildsProjectHeader)
		case lsBuildsVCSRootParam:
			headers = append(headers, lsBuildsVCSRootHeader)
		case lsBuildsCheckoutParam:
			headers = append(headers, lsBuildsCheckoutHeader)
		case lsBuildsTriggersParam:
			headers = append(headers, lsBuildsTriggersHeader)
		case lsBuildsDependenciesParam:
			headers = append(headers, lsBuildsDependenciesHeader)
		default:
			panic(fmt.Sprintf("unsupported value '%v' in fields parameter", f))
		}
	}

	return headers
}

// matches returns true if no filters are set or one of the filters matches
// the ID or the path of the build type.
func (c *lsBuildsCmd) matches(id, path string) bool {
	if len(c.filters) == 0 {
		return true
	}

	for _, f := range c.filters {
		// patterns were validated in preRun, Match only fails on
		// invalid patterns
		if ok, _ := doublestar.Match(f, id); ok {
			return true
		}

		if ok, _ := doublestar.Match(f, path); ok {
			return true
		}
	}

	return false
}

func (c *lsBuildsCmd) run(_ *cobra.Command, _ []string) {
	cfgCtx := mustLoadContext(c.contextPath)
	root := mustBuildRootProject(cfgCtx)

	writeHeaders := !c.quiet && c.format.Value() != flag.FormatJSON
	formatter := mustNewFormatter(c.format.Value(), c.createHeader(), writeHeaders)

	var cnt int
	err := root.Walk(func(p *pipeline.Project, parents []*pipeline.Project) error {
		prjPath := projectPath(p, parents)

		for _, bt := range p.BuildTypes {
			if !c.matches(bt.ID, prjPath+"/"+bt.ID) {
				continue
			}

			mustWriteRow(formatter, c.row(p, bt)...)
			cnt++
		}

		return nil
	})
	exitOnErr(err)

	exitOnErr(formatter.Flush())

	log.Debugf("listed %d build types", cnt)
}

func (c *lsBuildsCmd) row(p *pipeline.Project, bt *pipeline.BuildType) []any {
	row := make([]any, 0, len(c.fields.Fields))
	isJSON := c.format.Value() == flag.FormatJSON

	for _, f := range c.fields.Fields {
		switch f {
		case lsBuildsIDParam:
			row = append(row, bt.ID)
		case lsBuildsNameParam:
			row = append(row, bt.Name)
		case lsBuildsProjectParam:
			row = append(row, p.ID)
		case lsBuildsVCSRootParam:
			row = append(row, bt.VCS.Root)
		case lsBuildsCheckoutParam:
			switch {
			case isJSON:
				row = append(row, bt.VCS.CleanCheckout)
			case c.format.Value() == flag.FormatPlain:
				row = append(row, coloredCheckoutMode(bt.VCS.CleanCheckout))
			default:
				row = append(row, checkoutMode(bt.VCS.CleanCheckout))
			}
		case lsBuildsTriggersParam:
			row = append(row, len(bt.Triggers))
		case lsBuildsDependenciesParam:
			deps := make([]string, 0, len(bt.Dependencies))
			for _, d := range bt.Dependencies {
				deps = append(deps, d.BuildTypeID)
			}

			if isJSON {
				row = append(row, deps)
			} else {
				row = append(row, strings.Join(deps, " "))
			}
		}
	}

	return row
}

func checkoutMode(cleanCheckout bool) string {
	if cleanCheckout {
		return "clean"
	}

	return "reuse"
}

func coloredCheckoutMode(cleanCheckout bool) string {
	if cleanCheckout {
		return term.GreenHighlight(checkoutMode(cleanCheckout))
	}

	return term.RedHighlight(checkoutMode(cleanCheckout))
}
