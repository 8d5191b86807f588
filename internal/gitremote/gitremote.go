// Package gitremote turns project-local image paths into raw GitHub URLs,
// using git to find the default branch of the repository.
package gitremote

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-zeta/internal/process"
)

// RawBaseURL serves repository files over HTTPS.
const RawBaseURL = "https://raw.githubusercontent.com"

// Sentinel errors for remote resolution.
var (
	ErrNoRepository = errors.New("repository not configured")
	ErrRemote       = errors.New("git remote lookup failed")
	ErrNoHeadBranch = errors.New("remote reports no HEAD branch")
)

// Runner executes name with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExecRunner runs the command as a child process group bound to ctx.
func ExecRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := process.Command(ctx, dir, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBranch skips the git lookup and uses branch directly.
func WithBranch(branch string) Option {
	return func(r *Resolver) { r.fixedBranch = branch }
}

// WithDir runs git in dir instead of the working directory.
func WithDir(dir string) Option {
	return func(r *Resolver) { r.dir = dir }
}

// WithRunner replaces the command runner (used by tests).
func WithRunner(run Runner) Option {
	return func(r *Resolver) { r.run = run }
}

// WithLogger sets the logger for lookup diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Resolver) { r.logger = l }
}

// Resolver maps "/images/a.png" to
// "https://raw.githubusercontent.com/<owner>/<repo>/<branch>/images/a.png".
// The branch is looked up at most once, on first use.
type Resolver struct {
	repository  string
	remote      string
	fixedBranch string
	dir         string
	run         Runner
	logger      logrus.FieldLogger
	branch      func() (string, error)
}

// NewResolver creates a Resolver for repository ("owner/repo"). ctx bounds
// the git invocation, which happens lazily on the first ResolveImage call.
func NewResolver(ctx context.Context, repository, remote string, opts ...Option) (*Resolver, error) {
	if repository == "" {
		return nil, ErrNoRepository
	}
	if remote == "" {
		remote = "origin"
	}

	r := &Resolver{
		repository: repository,
		remote:     remote,
		run:        ExecRunner,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.branch = sync.OnceValues(func() (string, error) {
		return r.lookup(ctx)
	})
	return r, nil
}

// Branch returns the branch image URLs point at.
func (r *Resolver) Branch() (string, error) {
	return r.branch()
}

// ResolveImage implements compiler.ImageResolver.
func (r *Resolver) ResolveImage(path string) (string, error) {
	branch, err := r.branch()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return RawBaseURL + "/" + r.repository + "/" + branch + path, nil
}

func (r *Resolver) lookup(ctx context.Context) (string, error) {
	if r.fixedBranch != "" {
		return r.fixedBranch, nil
	}

	out, err := r.run(ctx, r.dir, "git", "remote", "show", r.remote)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemote, err)
	}

	branch, err := ParseHeadBranch(out)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, r.remote)
	}

	r.logger.WithFields(logrus.Fields{"remote": r.remote, "branch": branch}).Debug("resolved default branch")
	return branch, nil
}

// ParseHeadBranch extracts the branch from the "HEAD branch: <name>" line of
// `git remote show` output.
func ParseHeadBranch(output []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(output))
	for sc.Scan() {
		name, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "HEAD branch:")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || name == "(unknown)" {
			return "", ErrNoHeadBranch
		}
		return name, nil
	}
	return "", ErrNoHeadBranch
}
