package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/fs"
	"github.com/simplesurance/ciconf/pkg/cfg"
)

func init() {
	initCmd.AddCommand(&newInitContextCmd().Command)
}

const initContextLongHelp = `
Create a new context configuration file.
The file contains the settings of the GA, Beta and VCR test environments.
Values are read from environment variables via Go templates when the file
is loaded.

If no argument is passed, the file is created in the current directory.
If the argument is a directory, the file is created in it.
`

type initContextCmd struct {
	cobra.Command

	force bool
}

func newInitContextCmd() *initContextCmd {
	cmd := initContextCmd{
		Command: cobra.Command{
			Use:   "context [PATH]",
			Short: "create a context configuration file",
			Long:  strings.TrimSpace(initContextLongHelp),
			Args:  cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVarP(&cmd.force, "force", "f", false,
		"overwrite the file if it exists")

	return &cmd
}

func (c *initContextCmd) run(_ *cobra.Command, args []string) {
	path := defaultContextFile

	if len(args) == 1 {
		path = args[0]

		if isDir, _ := fs.IsDir(path); isDir {
			path = filepath.Join(path, defaultContextFile)
		}
	}

	if ext := filepath.Ext(path); !strings.EqualFold(ext, ".toml") {
		fatalf("%s: context configuration files can only be created in TOML format, the file extension must be .toml", path)
		return
	}

	var err error
	if c.force {
		err = cfg.ExampleContext().ToFile(path, cfg.ToFileOptOverwrite())
	} else {
		err = cfg.ExampleContext().ToFile(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			fatalf("%s already exists, pass --force to overwrite it", path)
			return
		}

		exitOnErr(err)
		return
	}

	stdout.Printf("Context configuration was written to %s\n", term.Highlight(path))
	stdout.Printf("\nNext Steps:\n"+
		"1. Set the environment variables referenced in '%s' or replace the templates with values\n"+
		"2. Run '%s' to verify the configuration\n"+
		"3. Run '%s' to generate the CI configuration\n",
		term.Highlight(path),
		term.Highlight(cmdValidate),
		term.Highlight(cmdRender),
	)
}
