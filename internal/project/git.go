package project

import (
	"os/exec"
	"strings"
)

// GitRunner executes a git command in dir and returns its output.
type GitRunner func(dir string, args ...string) (string, error)

func execGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return string(out), err
}

// Branch returns the branch checked out in the repository containing dir. ok
// is false when dir is not in a repository, does not exist, or git is not
// installed. A nil run uses the git binary.
func Branch(dir string, run GitRunner) (branch string, ok bool) {
	if run == nil {
		run = execGit
	}
	out, err := run(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", false
	}
	branch = strings.TrimSpace(out)
	return branch, branch != ""
}
