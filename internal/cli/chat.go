package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tripwise/tripwise/internal/config"
	"github.com/tripwise/tripwise/internal/domain"
)

func newChatCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the travel assistant from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			orch, cleanup, err := buildOrchestrator(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			if sessionID == "" {
				sessionID = uuid.New().String()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println("Tripwise travel assistant. Type a travel question, /reset to start over, /quit to exit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "/quit", "/exit":
					return nil
				case "/reset":
					msg, err := orch.ResetSession(ctx, sessionID)
					if err != nil {
						return err
					}
					fmt.Println(msg)
					continue
				}

				result, err := orch.SubmitMessage(ctx, sessionID, line)
				if err != nil {
					return err
				}
				printTurn(result)

				if ctx.Err() != nil {
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session key (default: random)")

	return cmd
}

func printTurn(result *domain.TurnResult) {
	fmt.Println(result.Message)
	switch result.Kind {
	case domain.TurnOffTopic:
		fmt.Println("Try for example:")
		for _, ex := range result.TravelExamples {
			fmt.Printf("  - %s\n", ex)
		}
	case domain.TurnAnswered:
		if result.FunctionCalled != "" {
			fmt.Printf("(used %s)\n", result.FunctionCalled)
		}
	}
}
