package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/spf13/afero"
)

// Source tells where a document is read from: a file, or a file within a git
// repository at a given revision.
type Source struct {
	Path   string
	GitURL string
	// GitRef is a tag, branch or commit. Empty means HEAD.
	GitRef string
}

func (s Source) String() string {
	if s.GitURL == "" {
		return s.Path
	}
	ref := s.GitRef
	if ref == "" {
		ref = "HEAD"
	}
	return s.GitURL + "@" + ref + ":" + s.Path
}

// Loader reads documents from its file system or from git.
type Loader struct {
	Fs afero.Fs
}

func NewLoader(fs afero.Fs) *Loader {
	return &Loader{Fs: fs}
}

// Load returns the content of the document.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src.Path == "" {
		return nil, errors.New("no document path defined")
	}
	if src.GitURL == "" {
		data, err := afero.ReadFile(l.Fs, src.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.Path, err)
		}
		return data, nil
	}

	slog.With("url", src.GitURL, "ref", src.GitRef).InfoContext(ctx, "Cloning repository")
	var out bytes.Buffer
	r, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:      src.GitURL,
		Progress: &out,
		Tags:     git.AllTags,
	})
	slog.DebugContext(ctx, "Git clone output", "output", out.String())
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", src.GitURL, err)
	}
	return readAt(r, src.GitRef, src.Path)
}

// readAt reads path from the tree of the commit ref resolves to.
func readAt(r *git.Repository, ref, path string) ([]byte, error) {
	if ref == "" {
		ref = string(plumbing.HEAD)
	}
	hash, err := r.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %s: %w", ref, err)
	}
	commit, err := r.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}
	file, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s at %s: %w", path, ref, err)
	}
	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	return []byte(content), nil
}
