// Package main is a command line demo that streams one chat completion
// from the Ark API and prints it to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/crescendochat/doubao"
)

func main() {
	// Values from a local .env complement the environment.
	_ = godotenv.Load()

	model := flag.String("model", "doubao-seed-1-6-250615-thinking", "model name, thinking suffixes are decoded")
	prompt := flag.String("prompt", "Introduce yourself in one sentence.", "user prompt to send")
	baseURL := flag.String("base-url", "", "endpoint base URL (defaults to the Ark endpoint)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall request timeout")
	reasoning := flag.Bool("reasoning", false, "print reasoning content before the answer")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	apiKey := os.Getenv("ARK_API_KEY")
	if apiKey == "" {
		logger.Error("ARK_API_KEY is not set")
		os.Exit(1)
	}

	client, err := doubao.New(
		doubao.WithAPIKey(apiKey),
		doubao.WithBaseURL(*baseURL),
		doubao.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}

	// Show what the adapter decoded from the model flag.
	canonical, mode := doubao.DecodeModelName(*model)
	fmt.Fprintf(os.Stderr, "model: %s (thinking: %s)\n", canonical, mode)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stream, err := client.StreamCompletion(ctx, &doubao.ChatRequest{
		Model:    *model,
		Messages: []doubao.ChatMessage{doubao.TextMessage("user", *prompt)},
	})
	if err != nil {
		logger.Error("request failed", "error", err)
		os.Exit(1)
	}
	defer stream.Close()

	inReasoning := false
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr)
			logger.Error("stream interrupted", "error", err)
			os.Exit(1)
		}
		for _, choice := range chunk.Choices {
			if *reasoning && choice.Delta.ReasoningContent != "" {
				if !inReasoning {
					fmt.Print("[reasoning] ")
					inReasoning = true
				}
				fmt.Print(choice.Delta.ReasoningContent)
			}
			if choice.Delta.Content != "" {
				if inReasoning {
					fmt.Println()
					inReasoning = false
				}
				fmt.Print(choice.Delta.Content)
			}
		}
	}
	fmt.Println()
	fmt.Fprintf(os.Stderr, "time to first token: %s\n", stream.TTFT())
}
