// Package ghsource fetches SVG content from a GitHub repository,
// either a single pull request's before/after state or an arbitrary
// list of refs, for feeding into the core diff pipeline.
package ghsource

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creachadair/taskgroup"
	"github.com/google/go-github/v63/github"
	"github.com/natefinch/atomic"
)

// CorpusEntry is one labelled document in an externally-assembled
// input sequence.
type CorpusEntry struct {
	// Label identifies the document for reporting: here, a commit SHA
	// or ref name.
	Label string
	SVG   string
}

// Client fetches SVG content from one GitHub repository.
type Client struct {
	Owner, Repo string

	client *github.Client
}

func (c *Client) apiClient() *github.Client {
	if c.client == nil {
		c.client = github.NewClient(nil)
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			c.client = c.client.WithAuthToken(token)
		}
	}
	return c.client
}

// ContentAt returns the content of path at ref (a commit SHA, branch
// or tag).
func (c *Client) ContentAt(ctx context.Context, path, ref string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := &github.RepositoryContentGetOptions{Ref: ref}
	content, _, _, err := c.apiClient().Repositories.GetContents(ctx, c.Owner, c.Repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("getting %q at %s: %w", path, ref, err)
	}
	return content.GetContent()
}

// PullRequestPair returns the content of path as it stood immediately
// before prNum's changes, and as it stands with them applied.
func (c *Client) PullRequestPair(ctx context.Context, path string, prNum int) (before, after CorpusEntry, err error) {
	if bs, as, ok := getCachedPair(c.Owner, c.Repo, path, prNum); ok {
		return bs, as, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pr, _, err := c.apiClient().PullRequests.Get(ctx, c.Owner, c.Repo, prNum)
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, err
	}

	mergeCommit := pr.GetMergeCommitSHA()
	if mergeCommit == "" {
		return CorpusEntry{}, CorpusEntry{}, fmt.Errorf("no merge commit available for PR %d", prNum)
	}
	commitInfo, _, err := c.apiClient().Git.GetCommit(ctx, c.Owner, c.Repo, mergeCommit)
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, fmt.Errorf("getting info for merge SHA %q: %w", mergeCommit, err)
	}

	var beforeSHA string
	switch {
	case pr.GetMerged() && len(commitInfo.Parents) == 1:
		beforeSHA = commitInfo.Parents[0].GetSHA()
	case !pr.GetMerged() && !pr.GetMergeable():
		return CorpusEntry{}, CorpusEntry{}, fmt.Errorf("cannot diff PR %d, needs rebase", prNum)
	default:
		if n := len(commitInfo.Parents); n != 2 {
			return CorpusEntry{}, CorpusEntry{}, fmt.Errorf("unexpected parent count %d for trial merge commit on PR %d", n, prNum)
		}
		head := pr.GetHead().GetSHA()
		if commitInfo.Parents[0].GetSHA() == head {
			beforeSHA = commitInfo.Parents[1].GetSHA()
		} else {
			beforeSHA = commitInfo.Parents[0].GetSHA()
		}
	}

	beforeSVG, err := c.ContentAt(ctx, path, beforeSHA)
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, err
	}
	afterSVG, err := c.ContentAt(ctx, path, mergeCommit)
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, err
	}

	before = CorpusEntry{Label: beforeSHA, SVG: beforeSVG}
	after = CorpusEntry{Label: mergeCommit, SVG: afterSVG}
	if pr.GetMerged() {
		putCachedPair(c.Owner, c.Repo, path, prNum, before, after)
	}
	return before, after, nil
}

// AtRefs fetches path at every ref in refs, preserving order. Fetches
// run concurrently, bounded to a small worker count, since each is an
// independent GitHub API call with no shared state.
func (c *Client) AtRefs(ctx context.Context, path string, refs []string) ([]CorpusEntry, error) {
	entries := make([]CorpusEntry, len(refs))
	g, start := taskgroup.New(nil).Limit(4)
	for i, ref := range refs {
		i, ref := i, ref
		start(func() error {
			svg, err := c.ContentAt(ctx, path, ref)
			if err != nil {
				return err
			}
			entries[i] = CorpusEntry{Label: ref, SVG: svg}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

type cacheEntry struct {
	Before, After CorpusEntry
}

func cachePath(owner, repo, path string, prNum int) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "svgdiff", "pr-cache",
		fmt.Sprintf("%s-%s-%s-%d.json.gz", owner, repo, filepath.Base(path), prNum)), nil
}

func getCachedPair(owner, repo, path string, prNum int) (before, after CorpusEntry, ok bool) {
	cp, err := cachePath(owner, repo, path, prNum)
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, false
	}
	bs, err := os.ReadFile(cp)
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, false
	}
	gr, err := gzip.NewReader(bytes.NewReader(bs))
	if err != nil {
		return CorpusEntry{}, CorpusEntry{}, false
	}
	var ent cacheEntry
	if err := json.NewDecoder(gr).Decode(&ent); err != nil {
		return CorpusEntry{}, CorpusEntry{}, false
	}
	return ent.Before, ent.After, true
}

func putCachedPair(owner, repo, path string, prNum int, before, after CorpusEntry) {
	cp, err := cachePath(owner, repo, path, prNum)
	if err != nil {
		return
	}
	if _, err := os.Stat(cp); err == nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(cp), 0700); err != nil {
		return
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gw).Encode(cacheEntry{Before: before, After: after}); err != nil {
		return
	}
	if err := gw.Close(); err != nil {
		return
	}
	atomic.WriteFile(cp, &buf)
}
