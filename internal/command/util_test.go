package command

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ciconf/internal/command/term"
	"github.com/simplesurance/ciconf/internal/log"
	"github.com/simplesurance/ciconf/internal/testutils/logwriter"
	"github.com/simplesurance/ciconf/pkg/check"
	"github.com/simplesurance/ciconf/pkg/pipeline"
)

var testdataDir string

func init() {
	wd, err := os.Getwd()
	if err != nil {
		panic(wd)
	}

	testdataDir = filepath.Join(wd, "testdata")
}

// interceptCmdOutput changes the stdout and stderr streams to that the
// commands write to the returned buffers, all output is additionally still
// logged via the test logger
func interceptCmdOutput(t *testing.T) (stdoutBuf, stderrBuf *bytes.Buffer) {
	var bufStdout bytes.Buffer
	var bufStderr bytes.Buffer

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, &bufStdout))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, &bufStderr))

	t.Cleanup(func() {
		stdout = oldStdout
		stderr = oldStderr
	})

	return &bufStdout, &bufStderr
}

type exitInfo struct {
	Code int
}

func (e *exitInfo) String() string {
	return fmt.Sprintf("program terminated with exit code: %d", e.Code)
}

// initTest does the following:
// - changes the exitFunc to panic instead of calling os.Exit(),
// - changes stdout and stderr streams for the command to be redirect to the test logger,
// - disables colored output,
// - unsets the context environment variable.
func initTest(t *testing.T) {
	t.Helper()

	oldExitFunc := exitFunc
	exitFunc = func(code int) {
		panic(&exitInfo{Code: code})
	}

	oldNoColor := color.NoColor
	color.NoColor = true

	t.Setenv(envVarContext, "")

	t.Cleanup(func() {
		exitFunc = oldExitFunc
		color.NoColor = oldNoColor
	})

	redirectOutputToLogger(t)
}

func redirectOutputToLogger(t *testing.T) {
	// when tests are run in parallel this will cause unexpected
	// results, global package vars are modified that would affect all
	// parallel running tests
	log.RedirectToTestingLog(t)

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, io.Discard))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, io.Discard))

	t.Cleanup(func() {
		stdout = oldStdout
		stderr = oldStderr
	})
}

type cmdExecuter interface {
	Execute() error
	SetArgs([]string)
}

// execCheck runs cmd with args. If expectedExitCode is 0, the command must
// not call exitFunc, otherwise it must call it with expectedExitCode.
func execCheck(t *testing.T, cmd cmdExecuter, expectedExitCode int, args ...string) {
	t.Helper()

	defer func() {
		t.Helper()

		r := recover()
		if r == nil {
			return
		}

		if info, ok := r.(*exitInfo); ok {
			if info.Code != expectedExitCode {
				t.Fatalf("command exited with code %d, expected: %d", info.Code, expectedExitCode)
			}

			return
		}

		panic(r)
	}()

	if args == nil {
		// cobra falls back to os.Args when no arguments are set
		args = []string{}
	}

	cmd.SetArgs(args)
	err := cmd.Execute()
	require.NoError(t, err)

	require.Equalf(
		t,
		exitCodeSuccess, expectedExitCode,
		"command did not panic, expecting it to panic and fail with exitCode: %d", expectedExitCode,
	)
}

// addFailingCheck appends a check to checksFunc that reports a violation for
// the build type with the given ID.
func addFailingCheck(t *testing.T, buildTypeID string) {
	t.Helper()

	oldChecksFunc := checksFunc
	checksFunc = func() []check.Named {
		return append(check.Checks(), check.Named{
			Name: "always-fails",
			Fn: func(*pipeline.Project) error {
				return &check.ViolationError{
					Check: "always-fails",
					ID:    buildTypeID,
					Msg:   fmt.Sprintf("Build '%s' is rejected", buildTypeID),
				}
			},
		})
	}

	t.Cleanup(func() {
		checksFunc = oldChecksFunc
	})
}
