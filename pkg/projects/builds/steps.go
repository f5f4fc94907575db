package builds

import "github.com/simplesurance/ciconf/pkg/pipeline"

const bashHeader = "#!/usr/bin/env bash\nset -euo pipefail\n"

func script(name, body string) pipeline.Step {
	return pipeline.Step{
		Name:   name,
		Script: bashHeader + body,
	}
}

// SetGitCommitBuildID sets the build number to the abbreviated commit ID
// followed by the build counter.
func SetGitCommitBuildID() pipeline.Step {
	return script("Set build number from git commit",
		`export BUILD_ID="$(git rev-parse --short HEAD)-%build.counter%"
echo "##teamcity[buildNumber '${BUILD_ID}']"
`)
}

// TagBuildToIndicateTriggerMethod tags the build with "cron-trigger" or
// "manual-trigger".
func TagBuildToIndicateTriggerMethod() pipeline.Step {
	return script("Tag build to indicate trigger method",
		`if [[ "%teamcity.build.triggeredBy%" == "Schedule Trigger" ]]; then
  echo "##teamcity[addBuildTag 'cron-trigger']"
else
  echo "##teamcity[addBuildTag 'manual-trigger']"
fi
`)
}

// ConfigureGoEnv prints the Go environment and installs the test tools.
func ConfigureGoEnv() pipeline.Step {
	return script("Configure Go environment",
		`go version
go env
go install gotest.tools/gotestsum@latest
`)
}

// DownloadTerraformBinary downloads the Terraform CLI that the acceptance
// tests are run with.
func DownloadTerraformBinary() pipeline.Step {
	return script("Download Terraform binary",
		`mkdir -p "$(dirname "%env.TF_ACC_TERRAFORM_PATH%")"
wget --quiet "https://releases.hashicorp.com/terraform/%env.TERRAFORM_CORE_VERSION%/terraform_%env.TERRAFORM_CORE_VERSION%_linux_amd64.zip"
unzip -o "terraform_%env.TERRAFORM_CORE_VERSION%_linux_amd64.zip" -d "$(dirname "%env.TF_ACC_TERRAFORM_PATH%")"
`)
}

// RunAcceptanceTests runs the acceptance tests of the package in
// env.PACKAGE_PATH that match env.TEST_PREFIX.
func RunAcceptanceTests() pipeline.Step {
	return script("Run acceptance tests",
		`gotestsum --junitfile test-report.xml --format standard-verbose -- \
  "%env.PACKAGE_PATH%" -count=1 -run="%env.TEST_PREFIX%" \
  -parallel="%env.PARALLELISM%" -timeout="%env.TIMEOUT%h"
`)
}

// RunSweepers runs the sweepers of all service packages.
func RunSweepers() pipeline.Step {
	return script("Run sweepers",
		`go test -v "%env.PACKAGE_PATH%" -count=1 -timeout=60m \
  -sweep="%env.SWEEPER_REGIONS%" -sweep-allow-failures -sweep-run="%env.SWEEP_RUN%"
`)
}

// DownloadVCRCassettes copies the existing cassettes from the VCR bucket
// into env.VCR_PATH.
func DownloadVCRCassettes() pipeline.Step {
	return script("Download VCR cassettes",
		`mkdir -p "%env.VCR_PATH%"
gsutil -m cp "gs://%env.VCR_BUCKET_NAME%/fixtures/*" "%env.VCR_PATH%" || true
`)
}

// UploadVCRCassettes copies the recorded cassettes to the VCR bucket.
func UploadVCRCassettes() pipeline.Step {
	return script("Upload VCR cassettes",
		`gsutil -m cp "%env.VCR_PATH%/*" "gs://%env.VCR_BUCKET_NAME%/fixtures/"
`)
}

// ArchiveArtifactsIfOverLimit compresses the debug logs when they exceed
// the artifact size limit of the CI server.
func ArchiveArtifactsIfOverLimit() pipeline.Step {
	return script("Archive artifacts if over limit",
		`if [[ "$(du -sm debug-*.txt 2>/dev/null | awk '{s+=$1} END {print s+0}')" -gt 4000 ]]; then
  tar -czf debug-logs.tar.gz debug-*.txt
  rm -f debug-*.txt
fi
`)
}
