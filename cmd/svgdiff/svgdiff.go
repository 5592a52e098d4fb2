// svgdiff is a command-line tool to diff, batch-diff, canonicalise and
// inspect SVG documents using the structural diff engine.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/mdiff"
	"github.com/natefinch/atomic"

	svgdiff "github.com/svgdiff/engine"
	"github.com/svgdiff/engine/internal/editscript"
	"github.com/svgdiff/engine/internal/fingerprint"
	"github.com/svgdiff/engine/internal/ghsource"
	"github.com/svgdiff/engine/internal/gitcorpus"
	"github.com/svgdiff/engine/internal/idgen"
	"github.com/svgdiff/engine/internal/matcher"
	"github.com/svgdiff/engine/internal/rules"
	"github.com/svgdiff/engine/internal/svgparse"
)

func main() {
	root := &command.C{
		Name:  filepath.Base(os.Args[0]),
		Usage: "command [flags] ...\nhelp [command]",
		Help:  "A command-line tool to diff, batch-diff and inspect SVG documents.",
		Commands: []*command.C{
			{
				Name:     "diff",
				Usage:    "<a.svg> <b.svg>",
				Help:     "Print the JSON edit script that transforms a.svg into b.svg.",
				SetFlags: command.Flags(flax.MustBind, &diffArgs),
				Run:      command.Adapt(runDiff),
			},
			{
				Name:     "batch",
				Usage:    "<files...>",
				Help:     "Diff every adjacent pair in a sequence of SVG files.",
				SetFlags: command.Flags(flax.MustBind, &batchArgs),
				Run:      command.Adapt(runBatch),
			},
			{
				Name:     "fmt",
				Usage:    "<path>",
				Help:     "Canonicalise an SVG file, rewriting it in place by default.",
				SetFlags: command.Flags(flax.MustBind, &fmtArgs),
				Run:      command.Adapt(runFmt),
			},
			{
				Name:  "history",
				Usage: "<path-in-repo>",
				Help: `Diff every adjacent revision of one file's git history.

The path must live inside a local git clone.`,
				Run: command.Adapt(runHistory),
			},
			{
				Name:     "pr",
				Usage:    "<owner/repo> <number>",
				Help:     "Diff an SVG file across a GitHub pull request.",
				SetFlags: command.Flags(flax.MustBind, &prArgs),
				Run:      command.Adapt(runPR),
			},
			{
				Name: "debug",
				Commands: []*command.C{
					{
						Name:     "dump",
						Usage:    "<path> [target.svg]",
						Help:     "Print a debug dump of an SVG file's tree, fingerprints or match state.",
						SetFlags: command.Flags(flax.MustBind, &debugDumpArgs),
						Run:      command.Adapt(runDebugDump),
					},
				},
			},

			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx).MergeFlags(true)
	command.RunOrFail(env, os.Args[1:])
}

var diffArgs struct {
	Diff   bool   `flag:"d,Also print a unified text diff of a.svg against its id-annotated canonical form"`
	Config string `flag:"config,Path to a matching-rules configuration file"`
}

func loadRuleSet(path string) (*rules.Set, error) {
	if path == "" {
		return rules.Default(), nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return rules.ParseConfig(bs)
}

func runDiff(env *command.Env, aPath, bPath string) error {
	set, err := loadRuleSet(diffArgs.Config)
	if err != nil {
		return err
	}

	aBytes, err := os.ReadFile(aPath)
	if err != nil {
		return fmt.Errorf("reading %q: %w", aPath, err)
	}
	bBytes, err := os.ReadFile(bPath)
	if err != nil {
		return fmt.Errorf("reading %q: %w", bPath, err)
	}

	res, err := svgdiff.Diff(string(aBytes), string(bBytes), set, nil)
	if err != nil {
		return err
	}

	out, err := editscript.MarshalJSON(res.Script)
	if err != nil {
		return err
	}
	fmt.Fprintln(env, string(out))

	if diffArgs.Diff {
		lhs := strings.Split(string(aBytes), "\n")
		rhs := strings.Split(res.OriginSVG, "\n")
		diff := mdiff.New(lhs, rhs).AddContext(3)
		mdiff.FormatUnified(env, diff, &mdiff.FileInfo{
			Left:  "a/" + aPath,
			Right: "b/" + aPath,
		})
	}

	return nil
}

var batchArgs struct {
	Config string `flag:"config,Path to a matching-rules configuration file"`
}

func runBatch(env *command.Env, files ...string) error {
	if len(files) < 2 {
		return errors.New("batch requires at least two files")
	}

	set, err := loadRuleSet(batchArgs.Config)
	if err != nil {
		return err
	}

	docs := make([]string, len(files))
	for i, f := range files {
		bs, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading %q: %w", f, err)
		}
		docs[i] = string(bs)
	}

	results, err := svgdiff.DiffSequence(docs, set)
	if err != nil {
		return err
	}

	for i, res := range results {
		base := files[i]
		scriptPath := base + ".diff.json"
		originPath := base + ".origin.svg"

		out, err := editscript.MarshalJSON(res.Script)
		if err != nil {
			return err
		}
		if err := atomic.WriteFile(scriptPath, bytes.NewReader(out)); err != nil {
			return fmt.Errorf("writing %q: %w", scriptPath, err)
		}
		if err := atomic.WriteFile(originPath, strings.NewReader(res.OriginSVG)); err != nil {
			return fmt.Errorf("writing %q: %w", originPath, err)
		}
		fmt.Fprintf(env, "%s -> %s: wrote %s, %s\n", files[i], files[i+1], scriptPath, originPath)
	}
	return nil
}

var fmtArgs struct {
	Diff bool `flag:"d,Output a diff of changes instead of rewriting the file"`
}

func runFmt(env *command.Env, path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SVG file: %w", err)
	}

	tr, err := svgparse.Parse(string(bs))
	if err != nil {
		return err
	}
	clean := []byte(svgparse.Serialize(tr, 0, nil))
	changed := !bytes.Equal(bytes.TrimSpace(bs), bytes.TrimSpace(clean))

	if !changed {
		return nil
	}

	if fmtArgs.Diff {
		lhs, rhs := strings.Split(string(bs), "\n"), strings.Split(string(clean), "\n")
		diff := mdiff.New(lhs, rhs).AddContext(3)
		mdiff.FormatUnified(env, diff, &mdiff.FileInfo{
			Left:  "a/" + path,
			Right: "b/" + path,
		})
		return errors.New("file needs reformatting, rerun without -d to fix")
	}

	if err := atomic.WriteFile(path, bytes.NewReader(clean)); err != nil {
		return fmt.Errorf("failed to reformat: %w", err)
	}
	return nil
}

func runHistory(env *command.Env, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	hashes, err := gitcorpus.History(dir, filepath.Base(abs))
	if err != nil {
		return err
	}
	if len(hashes) < 2 {
		return fmt.Errorf("%q has fewer than two revisions in its history", path)
	}

	entries, err := gitcorpus.Sequence(dir, filepath.Base(abs), hashes)
	if err != nil {
		return err
	}

	docs := make([]string, len(entries))
	for i, e := range entries {
		docs[i] = e.SVG
	}
	results, err := svgdiff.DiffSequence(docs, rules.Default())
	if err != nil {
		return err
	}

	for i, res := range results {
		fmt.Fprintf(env, "=== %s -> %s ===\n", entries[i].Label, entries[i+1].Label)
		out, err := editscript.MarshalJSON(res.Script)
		if err != nil {
			return err
		}
		fmt.Fprintln(env, string(out))
	}
	return nil
}

var prArgs struct {
	Path string `flag:"path,Path (within the repository) of the SVG file to diff"`
}

func runPR(env *command.Env, repoSlug, numStr string) error {
	if prArgs.Path == "" {
		return errors.New("--path is required: the repository path of the SVG file to diff")
	}
	owner, repo, ok := strings.Cut(repoSlug, "/")
	if !ok {
		return fmt.Errorf("invalid repository %q, want owner/repo", repoSlug)
	}
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return fmt.Errorf("invalid PR number %q: %w", numStr, err)
	}

	client := &ghsource.Client{Owner: owner, Repo: repo}
	before, after, err := client.PullRequestPair(env.Context(), prArgs.Path, num)
	if err != nil {
		return err
	}

	res, err := svgdiff.Diff(before.SVG, after.SVG, rules.Default(), nil)
	if err != nil {
		return err
	}
	out, err := editscript.MarshalJSON(res.Script)
	if err != nil {
		return err
	}
	fmt.Fprintf(env, "=== %s -> %s ===\n", before.Label, after.Label)
	fmt.Fprintln(env, string(out))
	return nil
}

var debugDumpArgs struct {
	Format string `flag:"f,default=tree,Format to dump in, one of 'tree', 'fingerprint' or 'match'"`
}

func runDebugDump(env *command.Env, args ...string) error {
	if len(args) == 0 {
		return errors.New("debug dump requires at least one path")
	}

	bs, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read SVG file: %w", err)
	}
	tr, err := svgparse.Parse(string(bs))
	if err != nil {
		return err
	}

	switch debugDumpArgs.Format {
	case "tree":
		fmt.Fprintln(env, svgparse.Serialize(tr, 0, nil))
	case "fingerprint":
		fps := fingerprint.Compute(tr, rules.Default())
		for i, fp := range fps {
			fmt.Fprintf(env, "%d: all=%d subtrees=%d without_subtrees=%d\n",
				i, fp.All, fp.AllSubtrees, fp.AllWithoutSubtrees)
		}
	case "match":
		if len(args) != 2 {
			return errors.New("debug dump -f match requires <origin.svg> <target.svg>")
		}
		tBytes, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read SVG file: %w", err)
		}
		targetTr, err := svgparse.Parse(string(tBytes))
		if err != nil {
			return err
		}
		originFP := fingerprint.Compute(tr, rules.Default())
		targetFP := fingerprint.Compute(targetTr, rules.Default())
		res := matcher.Match(tr, targetTr, originFP, targetFP, rules.Default(), idgen.New())
		for i, st := range res.Origin {
			fmt.Fprintf(env, "origin[%d]: matched=%v id=%s target=%d\n", i, st.Matched, st.ID, st.TargetIndex)
		}
	default:
		return fmt.Errorf("unknown dump format %q", debugDumpArgs.Format)
	}
	return nil
}
