package pipeline

// VcsRoot references a git repository and the branches that are watched for
// changes.
type VcsRoot struct {
	ID         string
	Name       string
	URL        string
	Branch     string
	BranchSpec string
}

func (v VcsRoot) String() string {
	return v.ID
}

// NewGitVcsRoot returns a VcsRoot for a git repository.
// The ID is passed through ReplaceCharsID, the name is
// "<URL>#<Branch>".
func NewGitVcsRoot(id, url, branch, branchSpec string) VcsRoot {
	return VcsRoot{
		ID:         ReplaceCharsID(id),
		Name:       url + "#" + branch,
		URL:        url,
		Branch:     branch,
		BranchSpec: branchSpec,
	}
}
