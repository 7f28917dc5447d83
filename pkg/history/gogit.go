package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/zbiljic/semrel/internal/log"
	"github.com/zbiljic/semrel/pkg/commit"
)

// goGitReader reads history without the git executable.
type goGitReader struct {
	dir  string
	tags TagParser
}

func (r *goGitReader) Read(ctx context.Context) (*Result, error) {
	logger := log.WithComponentFromContext(ctx, "history")

	repo, err := openRepository(r.dir)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	res := &Result{}
	if head.Name().IsBranch() {
		res.Branch = head.Name().Short()
	}

	tagsByCommit, err := r.tagsByCommit(repo)
	if err != nil {
		return nil, err
	}

	reachable, err := r.walk(ctx, repo, head.Hash())
	if err != nil {
		return nil, err
	}

	var candidates []taggedVersion
	for _, c := range reachable {
		candidates = append(candidates, matchTags(r.tags, c.Hash.String(), tagsByCommit[c.Hash])...)
	}

	var released map[plumbing.Hash]struct{}
	if last, ok := latestTag(candidates); ok {
		res.LastTag = last.tag
		res.LastVersion = last.version
		logger.Debug().Str("tag", last.tag).Str("commit", last.hash).Msg("found last release")

		ancestors, err := r.walk(ctx, repo, plumbing.NewHash(last.hash))
		if err != nil {
			return nil, err
		}
		released = make(map[plumbing.Hash]struct{}, len(ancestors))
		for _, c := range ancestors {
			released[c.Hash] = struct{}{}
		}
	}

	for _, c := range reachable {
		if _, ok := released[c.Hash]; ok {
			continue
		}
		res.Commits = append(res.Commits, commit.ParseRecord(c.Hash.String(), c.Message))
	}

	logger.Debug().Int("commits", len(res.Commits)).Str("branch", res.Branch).Msg("history read")

	return res, nil
}

// tagsByCommit maps commit hashes to the names of the tags pointing at
// them. Annotated tags are resolved to their target commit.
func (r *goGitReader) tagsByCommit(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	out := make(map[plumbing.Hash][]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			c, err := tag.Commit()
			if err != nil {
				// tags of trees or blobs are not releases
				return nil
			}
			hash = c.Hash
		}
		out[hash] = append(out[hash], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	return out, nil
}

// walk returns the commits reachable from the given hash, newest first.
func (r *goGitReader) walk(ctx context.Context, repo *git.Repository, from plumbing.Hash) ([]*object.Commit, error) {
	iter, err := repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", from, err)
	}
	defer iter.Close()

	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

// openRepository opens the repository containing dir.
func openRepository(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// goGitWorkingTreeDir finds the working tree root without the git
// executable.
func goGitWorkingTreeDir(dir string) (string, error) {
	repo, err := openRepository(dir)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have no working tree
		return "", fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}

	return wt.Filesystem.Root(), nil
}
