package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"folio/internal/app"
)

var (
	name    string
	tagline string
)

// ProfileCmd is the parent command for the profile sections.
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the profile sections",
	Long:  `Show and edit the hero introduction, the about text and the CV.`,
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		p, err := folio.Profile.Get()
		if err != nil {
			return err
		}

		fmt.Printf("Name:    %s\n", p.Name)
		fmt.Printf("Tagline: %s\n", p.Tagline)
		if !p.UpdatedAt.IsZero() {
			fmt.Printf("Updated: %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		if about, err := folio.Profile.RenderAbout(); err == nil && about != "" {
			fmt.Printf("\nAbout:\n%s\n", about)
		}
		if cv, err := folio.Profile.RenderCV(); err == nil && cv != "" {
			fmt.Printf("\nCV:\n%s\n", cv)
		}
		if p.CVFile != "" {
			fmt.Printf("\nCV file: %s\n", p.CVFile)
		}
		return nil
	},
}

var SetIntroCmd = &cobra.Command{
	Use:   "set-intro",
	Short: "Set the hero name and tagline",
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		if err := folio.Profile.SetIntro(name, tagline); err != nil {
			color.Red("✗ %v", err)
			return err
		}

		color.Green("✓ Introduction updated")
		return nil
	},
}

var SetAboutCmd = &cobra.Command{
	Use:   "set-about [text]",
	Short: "Set the about section text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		if err := folio.Profile.SetAbout(args[0]); err != nil {
			color.Red("✗ %v", err)
			return err
		}

		color.Green("✓ About section updated")
		return nil
	},
}

var SetCVCmd = &cobra.Command{
	Use:   "set-cv [text]",
	Short: "Set the CV text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		if err := folio.Profile.SetCV(args[0]); err != nil {
			color.Red("✗ %v", err)
			return err
		}

		color.Green("✓ CV updated")
		return nil
	},
}

var AttachCVCmd = &cobra.Command{
	Use:   "attach-cv [file]",
	Short: "Record an uploaded CV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folio := app.FromContext(cmd.Context())
		if folio == nil {
			return fmt.Errorf("application not initialized")
		}

		if _, err := os.Stat(args[0]); err != nil {
			color.Red("✗ cannot access %s", args[0])
			return fmt.Errorf("stat cv file: %w", err)
		}

		if err := folio.Profile.AttachCV(filepath.Base(args[0])); err != nil {
			color.Red("✗ %v", err)
			return err
		}

		color.Green("✓ CV file recorded: %s", filepath.Base(args[0]))
		return nil
	},
}

func init() {
	SetIntroCmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	SetIntroCmd.Flags().StringVarP(&tagline, "tagline", "t", "", "short tagline under the name")
	_ = SetIntroCmd.MarkFlagRequired("name")
}
