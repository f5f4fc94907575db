package command

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/flag"
	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/pkg/pipeline"
)

func init() {
	lsCmd.AddCommand(&newLsProjectsCmd().Command)
}

type lsProjectsCmd struct {
	cobra.Command

	contextPath string
	quiet       bool
	format      *flag.OneOf
}

func newLsProjectsCmd() *lsProjectsCmd {
	cmd := lsProjectsCmd{
		Command: cobra.Command{
			Use:   "projects",
			Short: "list the project hierarchy",
			Args:  cobra.NoArgs,
		},
		format: flag.NewFormatFlag(),
	}

	cmd.Run = cmd.run

	addContextFlag(&cmd.Command, &cmd.contextPath)

	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)

	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"suppress printing a header in plain and csv format")

	return &cmd
}

func (c *lsProjectsCmd) run(_ *cobra.Command, _ []string) {
	cfgCtx := mustLoadContext(c.contextPath)
	root := mustBuildRootProject(cfgCtx)

	headers := []string{"ID", "Name", "Parent", "Build Types"}
	writeHeaders := !c.quiet && c.format.Value() != flag.FormatJSON
	formatter := mustNewFormatter(c.format.Value(), headers, writeHeaders)

	err := root.Walk(func(p *pipeline.Project, parents []*pipeline.Project) error {
		var parentID string
		if len(parents) > 0 {
			parentID = parents[len(parents)-1].ID
		}

		id := p.ID
		if c.format.Value() == flag.FormatPlain {
			id = strings.Repeat("  ", len(parents)) + id
		}

		mustWriteRow(formatter, id, p.Name, parentID, len(p.BuildTypes))

		return nil
	})
	exitOnErr(err)

	exitOnErr(formatter.Flush())
}
