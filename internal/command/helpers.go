package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/format"
	"github.com/simplesurance/ciconf/internal/fs"
	"github.com/simplesurance/ciconf/internal/log"
	"github.com/simplesurance/ciconf/pkg/cfg"
	"github.com/simplesurance/ciconf/pkg/cfg/resolver"
	"github.com/simplesurance/ciconf/pkg/pipeline"
	"github.com/simplesurance/ciconf/pkg/projects"
)

const (
	// envVarContext contains the name of an environment variable in that
	// the path of the context configuration file can be stored.
	envVarContext = "CICONF_CONTEXT"
	// defaultContextFile is the context configuration file that is used when
	// neither the --context flag nor the environment variable is set.
	defaultContextFile = "ciconf.toml"
)

// exitOnErr prints the error with the optional msg prefix to stderr and
// terminates the application with exitCodeError, if err is not nil.
func exitOnErr(err error, msg ...any) {
	if err == nil {
		return
	}

	if len(msg) == 0 {
		fatal(err)
		return
	}

	fatal(fmt.Sprint(msg...) + ": " + err.Error())
}

func exitOnErrf(err error, format string, v ...any) {
	if err == nil {
		return
	}

	fatalf(format+": %s", append(v, err)...)
}

func fatal(msg ...any) {
	stderr.Println(term.RedHighlight("ERROR:"), fmt.Sprint(msg...))
	exitFunc(exitCodeError)
}

func fatalf(format string, v ...any) {
	stderr.Printf(term.RedHighlight("ERROR: ")+format+"\n", v...)
	exitFunc(exitCodeError)
}

// addContextFlag registers the --context flag at cmd, the value is stored in
// path.
func addContextFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "context", "c", "",
		fmt.Sprintf("path of the context configuration file (.toml or .hcl),\n"+
			"defaults to the value of $%s or %s in the current or a parent directory",
			term.Highlight(envVarContext), term.Highlight(defaultContextFile)),
	)

	_ = cmd.MarkFlagFilename("context", "toml", "hcl")
}

// contextPath returns flagVal if it is not empty, otherwise the value of
// the envVarContext environment variable if it is set.
// Otherwise defaultContextFile is searched in the current directory and its
// parents, if it is not found defaultContextFile is returned.
func contextPath(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}

	if envPath := os.Getenv(envVarContext); envPath != "" {
		log.Debugf("using context configuration path from $%s environment variable", envVarContext)
		return envPath
	}

	path, err := fs.FindFileInParentDirs(".", defaultContextFile)
	if err != nil {
		log.Debugf("searching %s in parent directories failed: %s", defaultContextFile, err)
		return defaultContextFile
	}

	return path
}

func mustLoadContext(flagVal string) *cfg.Context {
	path := contextPath(flagVal)

	log.Debugf("loading context configuration from %s", path)

	c, err := cfg.Load(path, resolver.NewGoTemplate(filepath.Dir(path)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fatalf("context configuration file %s does not exist\n"+
				"create one with '%s' or pass the path via --context",
				path, term.Highlight(cmdInitContext))
			return nil
		}

		exitOnErr(err)
		return nil
	}

	log.Debugf("loaded context configuration from %s", c.FilePath())

	return c
}

func mustBuildRootProject(c *cfg.Context) *pipeline.Project {
	root, err := projects.GoogleRootProject(c)
	exitOnErrf(err, "creating project tree from context %s failed", c.FilePath())

	log.Debugf("created project tree with %d projects and %d build types",
		len(root.AllProjects()), len(root.AllBuildTypes()),
	)

	return root
}

func mustNewFormatter(formatName string, headers []string, withHeader bool) format.Formatter {
	return format.New(formatName, headers, withHeader, stdout)
}

func mustWriteRow(fmt format.Formatter, row ...any) {
	err := fmt.WriteRow(row...)
	exitOnErr(err)
}

// projectPath returns the IDs of parents and p joined by "/".
func projectPath(p *pipeline.Project, parents []*pipeline.Project) string {
	ids := make([]string, 0, len(parents)+1)
	for _, parent := range parents {
		ids = append(ids, parent.ID)
	}

	return strings.Join(append(ids, p.ID), "/")
}
