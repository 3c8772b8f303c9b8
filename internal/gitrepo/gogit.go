package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// defaultBranches are probed in order when resolving the remote head,
// falling back to the first advertised branch.
var defaultBranches = []string{"main", "master", "develop"}

// GoGit implements Client using the go-git library. It needs no git binary
// on the device.
type GoGit struct{}

// NewGoGit returns a go-git backed client.
func NewGoGit() *GoGit {
	return &GoGit{}
}

var _ Client = (*GoGit)(nil)

// Clone performs a shallow, single-branch clone of the repository's default
// branch into dest.
func (g *GoGit) Clone(ctx context.Context, url, dest string) (Commit, error) {
	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		return Commit{}, fmt.Errorf("cloning %s: %w", url, err)
	}
	return headCommit(repo)
}

// RemoteHead lists the remote's advertised references (the ls-remote
// operation) and returns the tip of the default branch: main, master, or
// develop when present, otherwise the first branch advertised.
func (g *GoGit) RemoteHead(ctx context.Context, url string) (string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("listing remote %s: %w", url, err)
	}

	byBranch := make(map[string]string)
	var first string
	for _, ref := range refs {
		if !ref.Name().IsBranch() {
			continue
		}
		byBranch[ref.Name().Short()] = ref.Hash().String()
		if first == "" {
			first = ref.Hash().String()
		}
	}

	for _, branch := range defaultBranches {
		if hash, ok := byBranch[branch]; ok {
			return hash, nil
		}
	}
	if first != "" {
		return first, nil
	}
	return "", fmt.Errorf("remote %s advertises no branches", url)
}

// LocalHead returns the head commit of the working copy at path.
func (g *GoGit) LocalHead(path string) (Commit, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return Commit{}, fmt.Errorf("opening repository %s: %w", path, err)
	}
	return headCommit(repo)
}

// Pull fast-forwards the working copy. Already-up-to-date is success;
// diverged history is an error and leaves the working copy untouched.
func (g *GoGit) Pull(ctx context.Context, path string) (Commit, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return Commit{}, fmt.Errorf("opening repository %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return Commit{}, fmt.Errorf("resolving worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:   "origin",
		SingleBranch: true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return Commit{}, fmt.Errorf("pulling %s: %w", path, err)
	}

	return headCommit(repo)
}

// Remove deletes the working copy at path.
func (g *GoGit) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// headCommit resolves HEAD and its committer timestamp.
func headCommit(repo *git.Repository) (Commit, error) {
	ref, err := repo.Head()
	if err != nil {
		return Commit{}, fmt.Errorf("resolving HEAD: %w", err)
	}

	commit := Commit{Hash: ref.Hash().String()}

	// The timestamp is display-only; a missing commit object (possible in
	// exotic shallow states) does not fail the operation.
	if obj, err := repo.CommitObject(plumbing.NewHash(commit.Hash)); err == nil {
		commit.When = obj.Committer.When
	}

	return commit, nil
}
