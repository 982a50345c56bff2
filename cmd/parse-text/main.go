// Command parse-text runs the AI text extraction flow once against a
// free-form pedido description and prints the extracted line items. It
// is a connectivity and prompt smoke check, not part of the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/facturafacil/facturafacil/internal/extract"
	"github.com/facturafacil/facturafacil/pkg/utils"
)

func main() {
	apiKey := flag.String("key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
	model := flag.String("model", "gpt-4o", "Model to use")
	timeout := flag.Duration("timeout", 60*time.Second, "API call timeout")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	_ = gotenv.Load()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = utils.NewDevelopmentLogger()
	} else {
		logger, err = utils.NewLogger(utils.LoggerConfig{Level: "warn", OutputPath: "stderr", Format: "console"})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if *apiKey == "" {
		fmt.Fprintln(os.Stderr, "ERROR: OPENAI_API_KEY not set and no --key flag provided")
		fmt.Fprintln(os.Stderr, `Usage: parse-text --key sk-... "2 camisas talla L a 20 soles"`)
		fmt.Fprintln(os.Stderr, "       echo <texto> | parse-text")
		os.Exit(1)
	}

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to read stdin: %v\n", err)
			os.Exit(1)
		}
		text = strings.TrimSpace(string(stdin))
	}
	if len(text) < extract.MinTextLength {
		fmt.Fprintf(os.Stderr, "ERROR: input needs at least %d characters\n", extract.MinTextLength)
		os.Exit(1)
	}

	cfg := openai.DefaultConfig(*apiKey)
	cfg.HTTPClient = &http.Client{Timeout: *timeout}
	flow := extract.NewTextFlow(openai.NewClientWithConfig(cfg), *model, logger)

	fmt.Printf("Model: %s\n", *model)
	fmt.Printf("Input: %q\n\n", text)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	result := flow.Parse(ctx, text)
	fmt.Printf("Elapsed: %v\n", time.Since(start))
	fmt.Printf("Items extracted: %d\n\n", len(result.Items))

	if len(result.Items) == 0 {
		fmt.Println("No items extracted. Run with --verbose to see the failure detail.")
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
