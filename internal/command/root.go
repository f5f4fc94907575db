package command

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/log"
	"github.com/simplesurance/ciconf/internal/version"
	"github.com/simplesurance/ciconf/pkg/check"
)

var rootCmd = &cobra.Command{
	Use:              "ciconf",
	Short:            "ciconf generates the CI configuration of the Google Terraform providers.",
	PersistentPreRun: initCiconf,
	SilenceUsage:     true,
}

var (
	verboseFlag bool
	noColorFlag bool
)

var (
	stdout = term.NewStream(os.Stdout)
	stderr = term.NewStream(os.Stderr)
)

var exitFunc = func(code int) { os.Exit(code) }

// checksFunc returns the checks that validate and render run.
var checksFunc = check.Checks

func initCiconf(_ *cobra.Command, _ []string) {
	if verboseFlag {
		log.StdLogger.EnableDebug(verboseFlag)
	}

	if noColorFlag {
		color.NoColor = true
	}
}

// Execute parses commandline flags and execute their actions
func Execute() {
	if err := version.LoadPackageVars(); err != nil {
		stderr.Printf("setting version failed: %s\n", err)
	}
	rootCmd.Version = version.CurSemVer.String()

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable color output")

	err := rootCmd.Execute()
	exitOnErr(err)
}
