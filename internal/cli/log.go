package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/ledger"
)

var (
	logAgent  string
	logInput  string
	logOutput string
	logTool   string
	logModel  string
	logPrompt string
)

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logAgent, "agent", "", "Agent ID (overrides config)")
	logCmd.Flags().StringVarP(&logInput, "input", "i", "", "Raw input content, hashed locally")
	logCmd.Flags().StringVarP(&logOutput, "output", "o", "", "Raw output content, hashed locally")
	logCmd.Flags().StringVar(&logTool, "tool", "", "Tool name")
	logCmd.Flags().StringVar(&logModel, "model", "", "Model version identifier")
	logCmd.Flags().StringVar(&logPrompt, "prompt-version", "", "Prompt version identifier")
}

var logCmd = &cobra.Command{
	Use:   "log <action_type>",
	Short: "Record one action in the ledger",
	Long: "Hashes --input and --output locally with SHA-256 and submits one event.\n" +
		"Raw content never leaves this machine. Prints the stored event as JSON.",
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	agentID := logAgent
	if agentID == "" {
		agentID = cfg.AgentID
	}
	if agentID == "" {
		return fmt.Errorf("no agent ID: set agent_id in config or pass --agent")
	}

	sub := ledger.Submission{
		AgentID:       agentID,
		ActionType:    args[0],
		InputHash:     hashFlag(logInput),
		OutputHash:    hashFlag(logOutput),
		ToolName:      logTool,
		Environment:   cfg.Environment,
		ModelVersion:  logModel,
		PromptVersion: logPrompt,
	}

	event, err := client.LogEvent(cmd.Context(), sub)
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(event, "", "  ")
	fmt.Println(string(out))
	return nil
}

func hashFlag(content string) string {
	if content == "" {
		return ledger.ZeroDigest
	}
	return ledger.HashContent(content)
}
