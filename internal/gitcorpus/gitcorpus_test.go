package gitcorpus

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with two commits, each
// writing a different body to name.svg, and returns the repo root and
// the commit hashes in history order.
func initRepo(t *testing.T, name string, bodies []string) (repoPath string, hashes []string) {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		c := exec.Command("git", args...)
		c.Dir = dir
		c.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
		if out, err := c.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-q")
	path := filepath.Join(dir, name)
	for i, body := range bodies {
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		run("add", name)
		run("commit", "-q", "-m", "revision")
		out, err := exec.Command("git", "-C", dir, "rev-parse", "HEAD").Output()
		if err != nil {
			t.Fatalf("rev-parse after commit %d: %v", i, err)
		}
		hashes = append(hashes, string(trimNewline(out)))
	}
	return dir, hashes
}

func trimNewline(bs []byte) []byte {
	for len(bs) > 0 && (bs[len(bs)-1] == '\n' || bs[len(bs)-1] == '\r') {
		bs = bs[:len(bs)-1]
	}
	return bs
}

func TestHistoryAndSequence(t *testing.T) {
	bodies := []string{
		`<svg viewBox="0 0 10 10"></svg>`,
		`<svg viewBox="0 0 20 20"></svg>`,
	}
	repo, wantHashes := initRepo(t, "icon.svg", bodies)

	gotHashes, err := History(repo, "icon.svg")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(gotHashes) != len(wantHashes) {
		t.Fatalf("History returned %d hashes, want %d", len(gotHashes), len(wantHashes))
	}
	for i, h := range wantHashes {
		if gotHashes[i] != h {
			t.Errorf("History[%d] = %s, want %s", i, gotHashes[i], h)
		}
	}

	entries, err := Sequence(repo, "icon.svg", gotHashes)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	if len(entries) != len(bodies) {
		t.Fatalf("Sequence returned %d entries, want %d", len(entries), len(bodies))
	}
	for i, body := range bodies {
		if entries[i].SVG != body {
			t.Errorf("Sequence[%d].SVG = %q, want %q", i, entries[i].SVG, body)
		}
		if entries[i].Label != gotHashes[i] {
			t.Errorf("Sequence[%d].Label = %s, want %s", i, entries[i].Label, gotHashes[i])
		}
	}
}
