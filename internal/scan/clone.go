// internal/scan/clone.go
package scan

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Cloner fetches remote repositories into temporary directories so they
// can be scanned like local trees. Only the tip commit is fetched.
type Cloner struct {
	token string
	ref   string
}

// NewCloner creates a Cloner. A non-empty token is sent as HTTP basic auth
// with the "x-token-auth" user, which GitHub, GitLab and Bitbucket accept.
func NewCloner(token string) *Cloner {
	return &Cloner{token: token}
}

// WithRef returns a copy of c that checks out the named branch or tag
// instead of the remote HEAD.
func (c *Cloner) WithRef(ref string) *Cloner {
	cp := *c
	cp.ref = ref
	return &cp
}

// Clone fetches repoURL into a fresh temporary directory. The caller must
// invoke cleanup once the scan is finished.
func (c *Cloner) Clone(ctx context.Context, repoURL string) (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "licenseid-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	if err := c.clone(ctx, dir, repoURL); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

func (c *Cloner) clone(ctx context.Context, dir, repoURL string) error {
	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if c.token != "" {
		opts.Auth = &http.BasicAuth{Username: "x-token-auth", Password: c.token}
	}
	if c.ref == "" {
		if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
			return fmt.Errorf("git clone %s: %w", repoURL, err)
		}
		return nil
	}

	// The ref may name a branch or a tag; try both.
	var err error
	for _, name := range []plumbing.ReferenceName{plumbing.NewBranchReferenceName(c.ref), plumbing.NewTagReferenceName(c.ref)} {
		opts.ReferenceName = name
		if _, err = git.PlainCloneContext(ctx, dir, false, opts); err == nil {
			return nil
		}
		if rmErr := resetDir(dir); rmErr != nil {
			return rmErr
		}
	}
	return fmt.Errorf("git clone %s at %s: %w", repoURL, c.ref, err)
}

// resetDir empties dir after a failed clone attempt.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("reset clone dir: %w", err)
	}
	return os.MkdirAll(dir, 0o700)
}
