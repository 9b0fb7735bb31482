package journal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"folio/internal/app"
	"folio/internal/render"
)

var (
	title   string
	content string
	yes     bool
)

// JournalCmd is the parent command for journal operations.
var JournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journal entries",
	Long:  `Add, list and clear journal entries.`,
}

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new journal entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}
		m := folio.Journal

		m.ToggleForm()
		if title == "" {
			title = promptLine("Title: ")
		}
		if content == "" {
			fmt.Println("Content (Ctrl+D to finish):")
			content = promptBlock()
		}
		m.SetDraft(title, content)

		view, err := m.Submit(cmd.Context())
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}

		color.Green("✓ Journal entry added!")
		fmt.Println(view)
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		view, err := folio.Journal.Refresh(cmd.Context())
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}

		fmt.Printf("Journal as of %s\n\n", render.Stamp(time.Now()))
		fmt.Println(view)
		return nil
	},
}

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		view, err := folio.Journal.Reset(cmd.Context(), confirmDestroy("journal entries"))
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}

		fmt.Println(view)
		return nil
	},
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func promptBlock() string {
	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return strings.Join(lines, "\n")
}

// confirmDestroy asks before an irreversible bulk delete, unless --yes.
func confirmDestroy(what string) func() bool {
	return func() bool {
		if yes {
			return true
		}
		fmt.Printf("This permanently deletes all %s. Continue? [y/N]: ", what)
		var answer string
		fmt.Scanln(&answer)
		return strings.EqualFold(strings.TrimSpace(answer), "y")
	}
}

func init() {
	AddCmd.Flags().StringVarP(&title, "title", "t", "", "entry title")
	AddCmd.Flags().StringVarP(&content, "content", "c", "", "entry content")
	ClearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
}
