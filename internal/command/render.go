package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/flag"
	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/log"
	"github.com/simplesurance/ciconf/pkg/check"
	"github.com/simplesurance/ciconf/pkg/render"
)

const renderLongHelp = `
Generate the CI configuration project tree and write it to stdout or a file.

Before the tree is written all checks that '` + cmdValidate + `' runs are
executed, if one fails nothing is written and the command exits with
code 2.
Values of password parameters are masked unless --show-secrets is passed.
`

const renderExamples = `
ciconf render                              render the tree in YAML format to stdout
ciconf render -c ci/beta.hcl --format json render using the context from ci/beta.hcl
ciconf render -o ciconf.yaml               write the tree to ciconf.yaml
`

func init() {
	rootCmd.AddCommand(&newRenderCmd().Command)
}

type renderCmd struct {
	cobra.Command

	contextPath    string
	format         *flag.OneOf
	outputPath     string
	skipValidation bool
	showSecrets    bool
}

func newRenderCmd() *renderCmd {
	cmd := renderCmd{
		Command: cobra.Command{
			Use:     "render",
			Short:   "generate the CI configuration",
			Long:    strings.TrimSpace(renderLongHelp),
			Example: strings.TrimSpace(renderExamples),
			Args:    cobra.NoArgs,
		},
		format: flag.NewOneOfFlag(
			"format",
			string(render.FormatYAML),
			"output format",
			render.Formats()...,
		),
	}

	cmd.Run = cmd.run

	addContextFlag(&cmd.Command, &cmd.contextPath)

	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)

	cmd.Flags().StringVarP(&cmd.outputPath, "output", "o", "",
		"write the configuration to the file instead of stdout")

	cmd.Flags().BoolVar(&cmd.skipValidation, "skip-validation", false,
		"do not run the checks before writing the configuration")

	cmd.Flags().BoolVar(&cmd.showSecrets, "show-secrets", false,
		"write the values of password parameters instead of a mask")

	return &cmd
}

func (c *renderCmd) run(_ *cobra.Command, _ []string) {
	cfgCtx := mustLoadContext(c.contextPath)
	root := mustBuildRootProject(cfgCtx)

	if !c.skipValidation {
		if err := check.Run(root, log.StdLogger, checksFunc()...); err != nil {
			printViolations(err)
			exitFunc(exitCodeValidationFailed)
			return
		}
	}

	format, err := render.ParseFormat(c.format.Value())
	exitOnErr(err)

	opts := render.Options{RevealSecrets: c.showSecrets}

	if c.outputPath == "" {
		err = render.Write(stdout, root, format, opts)
		exitOnErrf(err, "rendering configuration in %s format failed", format)
		return
	}

	err = writeFile(c.outputPath, func(w io.Writer) error {
		return render.Write(w, root, format, opts)
	})
	exitOnErrf(err, "rendering configuration in %s format failed", format)

	stderr.Printf("Configuration was written to %s\n", term.Highlight(c.outputPath))
}

// writeFile creates the file at path and passes it to write.
// If write or closing the file fails, the file is removed.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = write(f)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}

	err = f.Close()
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("closing %s failed: %w", path, err)
	}

	return nil
}
