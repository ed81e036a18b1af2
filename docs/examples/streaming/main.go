// Example: Streaming a chat completion with thinking mode
//
// This example streams a completion from a thinking-enabled Doubao model
// and prints reasoning and answer tokens as they arrive.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/crescendochat/doubao"
)

func main() {
	client, err := doubao.New(
		doubao.WithAPIKey(os.Getenv("ARK_API_KEY")),
	)
	if err != nil {
		log.Fatal(err)
	}

	// The "-thinking" suffix never reaches the wire: the adapter strips
	// it and sends thinking {"type":"enabled"} instead.
	stream, err := client.StreamCompletion(context.Background(), &doubao.ChatRequest{
		Model: "doubao-seed-1-6-250615-thinking",
		Messages: []doubao.ChatMessage{
			doubao.TextMessage("system", "You are a concise assistant."),
			doubao.TextMessage("user", "Why is the sky blue?"),
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		for _, choice := range chunk.Choices {
			// Reasoning goes to stderr so the answer stays pipeable.
			if choice.Delta.ReasoningContent != "" {
				fmt.Fprint(os.Stderr, choice.Delta.ReasoningContent)
			}
			fmt.Print(choice.Delta.Content)
		}
	}
	fmt.Println()
}
