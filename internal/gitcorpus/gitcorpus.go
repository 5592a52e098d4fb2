// Package gitcorpus assembles an ordered document sequence from the
// revision history of one file inside a local git clone, for feeding
// into the core diff pipeline as its svg_strings input.
package gitcorpus

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/creachadair/taskgroup"
)

// CorpusEntry is one labelled document in an externally-assembled
// input sequence.
type CorpusEntry struct {
	// Label identifies the document for reporting: here, the git
	// commit hash it was read from.
	Label string
	SVG   string
}

// History lists the revisions of one tracked file, oldest first.
func History(repoPath, filePath string) ([]string, error) {
	toplevel, err := gitToplevel(repoPath)
	if err != nil {
		return nil, err
	}

	bs, err := gitStdout(toplevel,
		"log", "--reverse", "--pretty=%H", "--follow", "--", filePath)
	if err != nil {
		return nil, fmt.Errorf("listing history of %q: %w", filePath, err)
	}

	var hashes []string
	for _, line := range strings.Split(string(bs), "\n") {
		if line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, nil
}

// Sequence returns the content of filePath at every commit hash in
// hashes, in the same order, as an ordered CorpusEntry sequence
// suitable for DiffSequence. Fetches run concurrently, bounded to a
// small worker count, since each is an independent `git show` with no
// shared state.
func Sequence(repoPath, filePath string, hashes []string) ([]CorpusEntry, error) {
	toplevel, err := gitToplevel(repoPath)
	if err != nil {
		return nil, err
	}

	entries := make([]CorpusEntry, len(hashes))
	g, start := taskgroup.New(nil).Limit(4)
	for i, hash := range hashes {
		i, hash := i, hash
		start(func() error {
			bs, err := gitStdout(toplevel, "show", fmt.Sprintf("%s:%s", hash, filePath))
			if err != nil {
				return fmt.Errorf("reading %q at %s: %w", filePath, hash, err)
			}
			entries[i] = CorpusEntry{Label: hash, SVG: string(bs)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func gitToplevel(path string) (string, error) {
	bs, err := gitStdout(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("finding top level of git repo %q: %w", path, err)
	}
	return string(bs), nil
}

func gitStdout(repoPath string, args ...string) ([]byte, error) {
	args = append([]string{"-C", repoPath}, args...)
	c := exec.Command("git", args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	bs, err := c.Output()
	if err != nil {
		cmdline := append([]string{"git"}, args...)
		var stderrStr string
		if stderr.Len() != 0 {
			stderrStr = "stderr:\n" + stderr.String()
		}
		return nil, fmt.Errorf("running %q: %w. %s", strings.Join(cmdline, " "), err, stderrStr)
	}
	return bytes.TrimSpace(bs), nil
}
