// Command agentcouncil runs the multi-agent conversation service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at release build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "agentcouncil",
	Short: "AgentCouncil - multi-agent conversation service",
	Long: `AgentCouncil orchestrates a council of LLM agents over a single
conversation: an architect drafts the answer and, depending on the mode,
a reviewer and a critic weigh in before the architect refines the final
response. Turns stream to clients as Server-Sent Events, and noteworthy
content (decisions, bugs, rules, prompts, technologies) is saved to the
knowledge base automatically.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newServeCmd(), newVersionCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
