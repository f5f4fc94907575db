package check

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ciconf/pkg/pipeline"
)

func cleanBuildType(id string) *pipeline.BuildType {
	bt := pipeline.NewBuildType(id, id)
	bt.VCS.Root = "ROOT_VCS"
	bt.VCS.CleanCheckout = true

	return bt
}

// testTree returns:
// ROOT (vcs root ROOT_VCS)
// ├── A: A_BUILD1, A_BUILD2
// │   └── A1: A1_BUILD
// └── B: B_BUILD
func testTree(t *testing.T) *pipeline.Project {
	t.Helper()

	root := pipeline.NewProject("ROOT", "Root", "")
	require.NoError(t, root.AddVcsRoot(pipeline.NewGitVcsRoot("ROOT_VCS", "https://example.com/repo", "refs/heads/main", "+:*")))

	a := pipeline.NewProject("A", "A", "")
	require.NoError(t, a.AddBuildType(cleanBuildType("A_BUILD1")))
	require.NoError(t, a.AddBuildType(cleanBuildType("A_BUILD2")))

	a1 := pipeline.NewProject("A1", "A1", "")
	require.NoError(t, a1.AddBuildType(cleanBuildType("A1_BUILD")))
	require.NoError(t, a.AddSubProject(a1))

	b := pipeline.NewProject("B", "B", "")
	require.NoError(t, b.AddBuildType(cleanBuildType("B_BUILD")))

	require.NoError(t, root.AddSubProject(a))
	require.NoError(t, root.AddSubProject(b))

	return root
}

func TestAllPassOnValidTree(t *testing.T) {
	assert.NoError(t, All(testTree(t)))
}

func TestCleanCheckoutNamesOffendingBuild(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("A1_BUILD").VCS.CleanCheckout = false

	err := CleanCheckout(root)
	require.Error(t, err)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "A1_BUILD", verr.ID)
	assert.Equal(t, "Build 'A1_BUILD' doesn't use clean checkout", err.Error())
}

func TestCleanCheckoutReportsFirstViolation(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("B_BUILD").VCS.CleanCheckout = false
	root.FindBuildType("A1_BUILD").VCS.CleanCheckout = false

	var verr *ViolationError
	require.ErrorAs(t, CleanCheckout(root), &verr)
	assert.Equal(t, "A1_BUILD", verr.ID)
}

func TestCleanCheckoutInjectedBuildType(t *testing.T) {
	root := testTree(t)

	injected := pipeline.NewBuildType("INJECTED_DIRTY", "dirty")
	injected.VCS.Root = "ROOT_VCS"
	require.NoError(t, root.FindProject("B").AddBuildType(injected))

	err := CleanCheckout(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INJECTED_DIRTY")
}

func TestUniqueIDs(t *testing.T) {
	root := testTree(t)

	// sibling uniqueness is enforced on insertion, duplicates in different
	// projects can only be detected by the tree-wide check
	require.NoError(t, root.FindProject("B").AddBuildType(cleanBuildType("A_BUILD1")))

	err := UniqueIDs(root)
	require.Error(t, err)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "A_BUILD1", verr.ID)
	assert.Contains(t, err.Error(), `"B"`)
	assert.Contains(t, err.Error(), `"A"`)
}

func TestValidIDs(t *testing.T) {
	root := testTree(t)
	require.NoError(t, root.FindProject("A").AddBuildType(cleanBuildType("1_INVALID")))

	err := ValidIDs(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1_INVALID")
}

func TestValidIDsRejectsMalformedNames(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("B_BUILD").Name = " B"

	err := ValidIDs(root)
	require.Error(t, err)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "B_BUILD", verr.ID)
	assert.Contains(t, verr.Msg, "white spaces")
}

func TestVCSRootsRegistered(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("A1_BUILD").VCS.Root = "UNKNOWN"

	err := VCSRootsRegistered(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN")

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "A1_BUILD", verr.ID)
}

func TestVCSRootsRegisteredInSiblingIsNotVisible(t *testing.T) {
	root := testTree(t)
	require.NoError(t, root.FindProject("B").AddVcsRoot(pipeline.NewGitVcsRoot("B_VCS", "https://example.com/b", "refs/heads/main", "+:*")))
	root.FindBuildType("A1_BUILD").VCS.Root = "B_VCS"

	assert.Error(t, VCSRootsRegistered(root))

	root.FindBuildType("A1_BUILD").VCS.Root = "ROOT_VCS"
	root.FindBuildType("B_BUILD").VCS.Root = "B_VCS"
	assert.NoError(t, VCSRootsRegistered(root))
}

func TestDependenciesResolvable(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("A_BUILD1").DependsOn("B_BUILD", true)
	require.NoError(t, DependenciesResolvable(root))

	root.FindBuildType("A_BUILD2").DependsOn("MISSING", false)
	err := DependenciesResolvable(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING")
}

func TestAllJoinsErrors(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("B_BUILD").VCS.CleanCheckout = false
	root.FindBuildType("A_BUILD2").DependsOn("MISSING", false)

	err := All(root)
	require.Error(t, err)

	var checks []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var verr *ViolationError
		require.True(t, errors.As(e, &verr))
		checks = append(checks, verr.Check)
	}

	assert.Equal(t, []string{"clean-checkout", "dependencies-resolvable"}, checks)
}

type recordingLogger struct {
	msgs []string
}

func (l *recordingLogger) Debugf(format string, v ...any) {
	l.msgs = append(l.msgs, fmt.Sprintf(format, v...))
}

func TestRunLogsResults(t *testing.T) {
	root := testTree(t)
	root.FindBuildType("B_BUILD").VCS.CleanCheckout = false

	logger := &recordingLogger{}
	err := Run(root, logger, Checks()[:2]...)
	require.Error(t, err)

	assert.Equal(t, []string{
		"check: clean-checkout: failed",
		"check: unique-ids: passed",
	}, logger.msgs)
}
