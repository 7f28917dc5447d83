package history

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/zbiljic/gitexec"

	"github.com/zbiljic/semrel/internal/log"
	"github.com/zbiljic/semrel/pkg/commit"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// execReader reads history by running git.
type execReader struct {
	dir  string
	tags TagParser
}

func (r *execReader) Read(ctx context.Context) (*Result, error) {
	logger := log.WithComponentFromContext(ctx, "history")

	workDir, err := execWorkingTreeDir(r.dir)
	if err != nil {
		return nil, err
	}

	res := &Result{Branch: currentBranch(workDir)}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := gitexec.Log(&gitexec.LogOptions{
		CmdDir: workDir,
		Format: "%H" + fieldSep + "%D" + recordSep,
	})
	if err != nil {
		if bytes.Contains(out, []byte("does not have any commits")) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("failed to read tags: %w: %s", err, strings.TrimSpace(string(out)))
	}

	var candidates []taggedVersion
	for _, rec := range splitRecords(out) {
		hash, decorations, _ := strings.Cut(rec, fieldSep)
		candidates = append(candidates, matchTags(r.tags, hash, parseTagDecorations(decorations))...)
	}

	opts := &gitexec.LogOptions{
		CmdDir: workDir,
		Format: "%H" + fieldSep + "%B" + recordSep,
	}
	if last, ok := latestTag(candidates); ok {
		res.LastTag = last.tag
		res.LastVersion = last.version
		opts.RevisionRange = last.hash + "..HEAD"
		logger.Debug().Str("tag", last.tag).Str("commit", last.hash).Msg("found last release")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err = gitexec.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read commits: %w: %s", err, strings.TrimSpace(string(out)))
	}

	for _, rec := range splitRecords(out) {
		hash, message, _ := strings.Cut(rec, fieldSep)
		res.Commits = append(res.Commits, commit.ParseRecord(hash, message))
	}

	logger.Debug().Int("commits", len(res.Commits)).Str("branch", res.Branch).Msg("history read")

	return res, nil
}

func splitRecords(out []byte) []string {
	var records []string
	for _, rec := range strings.Split(string(out), recordSep) {
		rec = strings.TrimLeft(rec, "\r\n")
		if strings.TrimSpace(rec) == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// parseTagDecorations extracts tag names from a %D decoration list such as
// "HEAD -> main, tag: 1.2.0, origin/main".
func parseTagDecorations(decorations string) []string {
	var tags []string
	for _, d := range strings.Split(decorations, ",") {
		if tag, ok := strings.CutPrefix(strings.TrimSpace(d), "tag: "); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// execWorkingTreeDir asks git for the top level directory of the working
// tree containing path.
func execWorkingTreeDir(path string) (string, error) {
	out, err := gitexec.RevParse(&gitexec.RevParseOptions{
		CmdDir:       path,
		ShowToplevel: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotRepository, path)
	}

	return strings.TrimSpace(string(out)), nil
}

// currentBranch returns the name of the current branch, or an empty string
// for a detached HEAD.
func currentBranch(workDir string) string {
	out, err := gitexec.SymbolicRef(&gitexec.SymbolicRefOptions{
		CmdDir: workDir,
		Short:  true,
		Ref:    "HEAD",
	})
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(out))
}
