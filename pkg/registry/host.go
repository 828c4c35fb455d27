// pkg/registry/host.go
package registry

import (
	"os"
	"strings"
)

// installCommands are the install invocations per backend
var installCommands = map[string]string{
	"apt":    "sudo apt-get install %s",
	"dpkg":   "sudo apt-get install %s",
	"dnf":    "sudo dnf install %s",
	"zypper": "sudo zypper install %s",
	"apk":    "apk add %s",
	"pacman": "sudo pacman -S %s",
	"brew":   "brew install %s",
	"nix":    "nix-env -iA nixpkgs.%s",
	"choco":  "choco install %s",
	"winget": "winget install %s",
}

// Host describes the machine a run happens on, for backend detection
type Host struct {
	GOOS     string
	ReadFile func(string) ([]byte, error) // nil uses os.ReadFile
}

// DetectBackend guesses the package manager of the host. Returns "" when
// nothing matches.
func DetectBackend(h Host) string {
	if h.ReadFile == nil {
		h.ReadFile = os.ReadFile
	}
	switch h.GOOS {
	case "darwin":
		return "brew"
	case "windows":
		return "winget"
	case "linux":
	default:
		return ""
	}

	if exists(h, "/etc/NIXOS") {
		return "nix"
	}
	if exists(h, "/etc/arch-release") {
		return "pacman"
	}
	if exists(h, "/etc/alpine-release") {
		return "apk"
	}

	data, err := h.ReadFile("/etc/os-release")
	if err != nil {
		if exists(h, "/etc/fedora-release") {
			return "dnf"
		}
		if exists(h, "/etc/SuSE-release") {
			return "zypper"
		}
		return ""
	}
	content := strings.ToLower(string(data))
	switch {
	case strings.Contains(content, "alpine"):
		return "apk"
	case strings.Contains(content, "fedora"), strings.Contains(content, "rhel"), strings.Contains(content, "centos"):
		return "dnf"
	case strings.Contains(content, "opensuse"), strings.Contains(content, "sles"):
		return "zypper"
	case strings.Contains(content, "ubuntu"), strings.Contains(content, "debian"):
		return "apt"
	case strings.Contains(content, "arch"), strings.Contains(content, "manjaro"):
		return "pacman"
	case strings.Contains(content, "nixos"):
		return "nix"
	}
	return ""
}

func exists(h Host, path string) bool {
	_, err := h.ReadFile(path)
	return err == nil
}
