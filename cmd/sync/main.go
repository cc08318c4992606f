// Package main provides the sync CLI that rebuilds the support corpus
// snapshot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wovenhouse/support-rag/internal/builder"
	"github.com/wovenhouse/support-rag/internal/chunker"
	"github.com/wovenhouse/support-rag/internal/corpus"
	"github.com/wovenhouse/support-rag/internal/embedding"
	"github.com/wovenhouse/support-rag/internal/source"
)

var (
	contentDir   string
	githubRepo   string
	githubPath   string
	chunkSize    int
	chunkOverlap int
)

var rootCmd = &cobra.Command{
	Use:   "support-sync",
	Short: "Support documentation corpus build tool",
	Long:  "CLI tool that builds the support RAG corpus snapshot from the documentation tree",
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the corpus snapshot from the content tree",
	Long: `Rebuilds the support corpus from scratch and replaces the snapshot.

This command:
1. Enumerates documents in the content tree (local directory or GitHub repo)
2. Parses front matter and splits each document into overlapping chunks
3. Generates an embedding and classifier signals for every chunk
4. Writes the snapshot to the primary path and the public mirror

Environment variables:
  OPENAI_API_KEY      OpenAI API key for embeddings (required)
  CORPUS_PATH         Primary snapshot path (default: data/support-corpus.json)
  CORPUS_MIRROR_PATH  Public mirror path (default: public/support-corpus.json)
  GITHUB_TOKEN        GitHub token when syncing from a docs repo (optional)`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&contentDir, "content-dir", "content/support", "local content tree to index")
	syncCmd.Flags().StringVar(&githubRepo, "github", "", "index a GitHub docs repo instead, as owner/repo")
	syncCmd.Flags().StringVar(&githubPath, "github-path", "docs", "base path inside the GitHub repo")
	syncCmd.Flags().IntVar(&chunkSize, "chunk-size", chunker.DefaultSize, "chunk window size in characters")
	syncCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", chunker.DefaultOverlap, "overlap between consecutive chunks")
	rootCmd.AddCommand(syncCmd)
}

func main() {
	// Load .env if present (local development), ignore if missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	primary := getEnv("CORPUS_PATH", "data/support-corpus.json")
	mirror := getEnv("CORPUS_MIRROR_PATH", "public/support-corpus.json")
	store := corpus.NewFileStore(primary, mirror, slog.Default())

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		return fmt.Errorf("create embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, 0)

	src, err := selectSource()
	if err != nil {
		return err
	}

	fmt.Println("Building support corpus...")
	fmt.Println()

	pipeline := builder.NewPipeline(src, embedder, store, slog.Default())
	pipeline.SetChunking(chunkSize, chunkOverlap)

	result, err := pipeline.Build(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Sync complete!")
	fmt.Printf("  Documents: %d/%d\n", result.SuccessfulDocs, result.TotalDocs)
	fmt.Printf("  Chunks: %d\n", result.TotalChunks)
	fmt.Printf("  Snapshot: %s (mirror: %s)\n", primary, mirror)
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Millisecond))

	if len(result.FailedDocs) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range result.FailedDocs {
			fmt.Printf("  - %s: %s\n", failed.Path, failed.Reason)
		}
	}

	fmt.Println()
	fmt.Printf("Total time: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func selectSource() (source.Source, error) {
	if githubRepo == "" {
		return source.NewLocalDir(contentDir, nil), nil
	}

	owner, repo, ok := strings.Cut(githubRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("--github must be owner/repo, got %q", githubRepo)
	}
	return source.NewGitHubDir(owner, repo, githubPath)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
