package source

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v81/github"
)

// GitHubDir serves documents from a directory of a GitHub repository, for
// teams that maintain the support content in a docs repo rather than on
// the web host's disk.
type GitHubDir struct {
	client   *github.Client
	owner    string
	repo     string
	basePath string
}

// NewGitHubDir creates a GitHub-backed source. Rate limits are handled
// automatically; if GITHUB_TOKEN is set the client authenticates for the
// higher request quota.
func NewGitHubDir(owner, repo, basePath string) (*GitHubDir, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, fmt.Errorf("create rate limiter: %w", err)
	}

	client := github.NewClient(rateLimiter)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHubDir{
		client:   client,
		owner:    owner,
		repo:     repo,
		basePath: basePath,
	}, nil
}

// List recursively enumerates documents under the base path.
func (g *GitHubDir) List(ctx context.Context) ([]string, error) {
	paths, err := g.listRecursive(ctx, g.basePath, "")
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (g *GitHubDir) listRecursive(ctx context.Context, fullPath, relPath string) ([]string, error) {
	_, dirContents, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, fullPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", fullPath, err)
	}

	var docs []string
	for _, item := range dirContents {
		if item.Type == nil || item.Name == nil {
			continue
		}

		itemRel := path.Join(relPath, *item.Name)
		switch *item.Type {
		case "file":
			if strings.HasSuffix(*item.Name, DocExtension) {
				docs = append(docs, itemRel)
			}
		case "dir":
			sub, err := g.listRecursive(ctx, path.Join(fullPath, *item.Name), itemRel)
			if err != nil {
				return nil, err
			}
			docs = append(docs, sub...)
		}
	}
	return docs, nil
}

// Fetch downloads one document by its relative path.
func (g *GitHubDir) Fetch(ctx context.Context, relPath string) (*Document, error) {
	fullPath := path.Join(g.basePath, relPath)

	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, fullPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", fullPath, err)
	}
	if fileContent == nil || fileContent.Content == nil {
		return nil, fmt.Errorf("no file content returned for %s", fullPath)
	}

	content, err := base64.StdEncoding.DecodeString(*fileContent.Content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fullPath, err)
	}

	return &Document{Path: relPath, Content: string(content)}, nil
}
