package cmd

import (
	"folio/cmd/folio/cmd/journal"
	"folio/cmd/folio/cmd/profile"
	"folio/cmd/folio/cmd/project"
)

func init() {
	journal.JournalCmd.AddCommand(journal.AddCmd)
	journal.JournalCmd.AddCommand(journal.ListCmd)
	journal.JournalCmd.AddCommand(journal.ClearCmd)
	rootCmd.AddCommand(journal.JournalCmd)

	project.ProjectCmd.AddCommand(project.AddCmd)
	project.ProjectCmd.AddCommand(project.ListCmd)
	project.ProjectCmd.AddCommand(project.ClearCmd)
	rootCmd.AddCommand(project.ProjectCmd)

	profile.ProfileCmd.AddCommand(profile.ShowCmd)
	profile.ProfileCmd.AddCommand(profile.SetIntroCmd)
	profile.ProfileCmd.AddCommand(profile.SetAboutCmd)
	profile.ProfileCmd.AddCommand(profile.SetCVCmd)
	profile.ProfileCmd.AddCommand(profile.AttachCVCmd)
	rootCmd.AddCommand(profile.ProfileCmd)
}
