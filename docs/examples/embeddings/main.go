// Example: Batch embeddings behind an in-memory cache
//
// This example embeds a batch of texts and shows how CachedEmbedder
// short-circuits repeated lookups of the same input.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/crescendochat/doubao"
)

func main() {
	client, err := doubao.New(
		doubao.WithAPIKey(os.Getenv("ARK_API_KEY")),
		doubao.WithRateLimit(5, 10),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Identical requests inside the TTL window are served from memory.
	embedder := doubao.NewCachedEmbedder(client, 15*time.Minute)

	result, err := embedder.Embeddings(context.Background(), &doubao.EmbeddingRequest{
		Model: "doubao-embedding-text-240715",
		Input: doubao.NewEmbeddingInputFromStrings([]string{
			"The quick brown fox",
			"jumps over the lazy dog",
		}),
	})
	if err != nil {
		log.Fatal(err)
	}

	for i, vector := range result.Vectors {
		fmt.Printf("input %d: %d dimensions\n", i, len(vector))
	}
	if result.Usage != nil {
		fmt.Printf("tokens billed: %d\n", result.Usage.TotalTokens)
	}
}
