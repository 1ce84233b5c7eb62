package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/sdk"
	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/utils"
)

// Interactive Q&A client against a running backend: pick a webinar, then
// ask questions about its live content.
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	baseURL := cfg.GetWithDefault("BACKEND_BASE_URL", "http://localhost:8080")
	client := sdk.NewClient(baseURL)

	ctx := context.Background()
	if err := startInteractiveSession(ctx, client); err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// startInteractiveSession runs the ask loop for one webinar
func startInteractiveSession(ctx context.Context, client *sdk.Client) error {
	webinars, err := client.ListWebinars(ctx)
	if err != nil {
		return fmt.Errorf("failed to list webinars: %w", err)
	}
	if len(webinars) == 0 {
		return fmt.Errorf("no webinars found")
	}

	fmt.Println("Webinars:")
	for i, w := range webinars {
		fmt.Printf("  [%d] %s (%s)\n", i, w.Title, w.Status)
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Pick a webinar index: ")
	if !scanner.Scan() {
		return nil
	}
	idx := 0
	if _, err := fmt.Sscanf(strings.TrimSpace(scanner.Text()), "%d", &idx); err != nil || idx < 0 || idx >= len(webinars) {
		return fmt.Errorf("invalid index")
	}
	selected := webinars[idx]

	fmt.Printf("Asking about %q. Type 'exit' to quit, 'summary' for the final summary.\n", selected.Title)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		if input == "summary" {
			summary, err := client.FinalSummary(ctx, selected.ID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Summary: %s\n", summary.Summary)
			for _, p := range summary.KeyPoints {
				fmt.Printf("  - %s\n", p)
			}
			continue
		}

		resp, err := client.AnswerQuestion(ctx, &sdk.AnswerRequest{
			WebinarID: selected.ID,
			UserID:    "commandline-user",
			Question:  input,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("Assistant: %s\n", resp.Answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}
