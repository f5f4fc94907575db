package command

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplesurance/ciconf/pkg/check"
)

func TestValidate(t *testing.T) {
	initTest(t)
	stdoutBuf, stderrBuf := interceptCmdOutput(t)

	execCheck(t, newValidateCmd(), exitCodeSuccess, "-c", filepath.Join(testdataDir, "ciconf.toml"))

	assert.Contains(t, stdoutBuf.String(), "clean-checkout")
	assert.Contains(t, stdoutBuf.String(), "passed")
	assert.NotContains(t, stdoutBuf.String(), "failed")
	assert.Contains(t, stdoutBuf.String(), "no violations found")
	assert.Empty(t, stderrBuf.String())
}

func TestValidateFailedCheck(t *testing.T) {
	initTest(t)
	stdoutBuf, stderrBuf := interceptCmdOutput(t)
	addFailingCheck(t, "GOOGLE_BETA_VCR_HASHICORP")

	execCheck(t, newValidateCmd(), exitCodeValidationFailed, "-c", filepath.Join(testdataDir, "ciconf.toml"))

	assert.Contains(t, stdoutBuf.String(), "always-fails")
	assert.NotContains(t, stdoutBuf.String(), "no violations found")
	assert.Contains(t, stderrBuf.String(), "violation: Build 'GOOGLE_BETA_VCR_HASHICORP' is rejected")
	assert.Contains(t, stderrBuf.String(), "1 elements violate checks: GOOGLE_BETA_VCR_HASHICORP")
}

func TestValidateInvalidContext(t *testing.T) {
	initTest(t)
	_, stderrBuf := interceptCmdOutput(t)

	execCheck(t, newValidateCmd(), exitCodeError, "-c", filepath.Join(testdataDir, "invalid.toml"))
	assert.Contains(t, stderrBuf.String(), "ERROR")
}

func TestPrintViolationsFlattensJoinedErrors(t *testing.T) {
	initTest(t)
	_, stderrBuf := interceptCmdOutput(t)

	printViolations(joinedTestErrors())

	assert.Contains(t, stderrBuf.String(), "violation: first\n")
	assert.Contains(t, stderrBuf.String(), "violation: second\n")
	assert.Contains(t, stderrBuf.String(), "violation: third\n")
}

func joinedTestErrors() error {
	return errors.Join(
		errors.New("first"),
		errors.Join(errors.New("second"), errors.New("third")),
	)
}

func TestViolatingIDs(t *testing.T) {
	err := errors.Join(
		&check.ViolationError{Check: "clean-checkout", ID: "B", Msg: "b"},
		errors.New("no violation"),
		errors.Join(&check.ViolationError{Check: "valid-ids", ID: "A", Msg: "a"}),
	)

	assert.Equal(t, []string{"B", "A"}, violatingIDs(err))
}
