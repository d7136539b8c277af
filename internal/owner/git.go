package owner

import (
	"fmt"
	"os/exec"
	"strings"
)

// GitClient reads identity from the local git configuration.
type GitClient struct{}

// NewGitClient creates a new git client.
func NewGitClient() *GitClient {
	return &GitClient{}
}

// UserName returns the configured git user.name.
func (c *GitClient) UserName() (string, error) {
	cmd := exec.Command("git", "config", "user.name")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get git user.name: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
