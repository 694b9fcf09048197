package hints

import (
	"os"

	"github.com/alnah/go-chat2doc/internal/fileutil"
)

// Host is the slice of the process environment that browser diagnostics read.
type Host struct {
	Getenv func(key string) string
	Exists func(path string) bool
}

// LocalHost reads the real environment and filesystem.
func LocalHost() Host {
	return Host{Getenv: os.Getenv, Exists: fileutil.FileExists}
}

// ciVars are set by the CI systems we recognise.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// CI reports whether a CI system is running the process.
func (h Host) CI() bool {
	for _, v := range ciVars {
		if h.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// Container reports whether the process runs in a container, and the signal
// that gave it away. CHAT2DOC_CONTAINER=1 forces detection.
func (h Host) Container() (bool, string) {
	switch {
	case h.Getenv("CHAT2DOC_CONTAINER") == "1":
		return true, "CHAT2DOC_CONTAINER=1"
	case h.Exists("/.dockerenv"):
		return true, "/.dockerenv"
	case h.Getenv("container") != "":
		return true, "container=" + h.Getenv("container")
	case h.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// NeedsNoSandbox reports whether Chrome will likely refuse to start with its
// sandbox: inside a container or CI, with ROD_NO_SANDBOX unset.
func (h Host) NeedsNoSandbox() bool {
	if h.Getenv("ROD_NO_SANDBOX") == "1" {
		return false
	}
	inContainer, _ := h.Container()
	return inContainer || h.CI()
}
