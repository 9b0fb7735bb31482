package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"folio/internal/app"
	"folio/internal/render"
)

var (
	title       string
	description string
	files       []string
	yes         bool
)

// ProjectCmd is the parent command for project operations.
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project records",
	Long:  `Add, list and clear project records. Projects may carry uploaded files.`,
}

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new project",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}
		m := folio.Projects

		m.ToggleForm()
		if title == "" {
			title = promptLine("Title: ")
		}
		if description == "" {
			fmt.Println("Description (Ctrl+D to finish):")
			description = promptBlock()
		}
		m.SetDraft(title, description)

		// Attachment order follows the flag order.
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				color.Red("✗ cannot read %s", path)
				return fmt.Errorf("read attachment %s: %w", path, err)
			}
			if err := m.Attach(filepath.Base(path), data); err != nil {
				return err
			}
		}

		view, err := m.Submit(cmd.Context())
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}

		color.Green("✓ Project added!")
		fmt.Println(view)
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		view, err := folio.Projects.Refresh(cmd.Context())
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}

		fmt.Printf("Projects as of %s\n\n", render.Stamp(time.Now()))
		fmt.Println(view)
		return nil
	},
}

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		view, err := folio.Projects.Reset(cmd.Context(), confirmDestroy("projects"))
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
	AddCmd.Flags().StringVarP(&title, "title", "t", "", "project title")
	AddCmd.Flags().StringVarP(&description, "desc", "d", "", "project description")
	AddCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "attach a file (repeatable)")
	ClearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
}
