package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/term"
)

const (
	cmdInitContext = "ciconf init context"
	cmdValidate    = "ciconf validate"
	cmdRender      = "ciconf render"
)

var initLongHelp = fmt.Sprintf(`
The init commands create ciconf configuration files.

To setup ciconf for the first time, the following commands should be run:
1.) %s
2.) %s

Afterwards the CI configuration can be generated with '%s'.
`, term.Highlight(cmdInitContext),
	term.Highlight(cmdValidate),
	term.Highlight(cmdRender))

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "create configuration files",
	Long:  strings.TrimSpace(initLongHelp),
}

func init() {
	rootCmd.AddCommand(initCmd)
}
