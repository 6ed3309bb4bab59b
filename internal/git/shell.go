// Package git shells out to the local git binary for the tag and remote
// metadata the tool needs.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a git subcommand and returns its trimmed standard output.
// Tests swap in a fake; production code uses CLI.
type Runner interface {
	Run(args ...string) (string, error)
}

// CLI runs git against the repository in the current working directory.
type CLI struct{}

// Run executes git with the given arguments.
func (CLI) Run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
