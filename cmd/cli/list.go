package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/akeren/teamup-site/config"
	"github.com/akeren/teamup-site/domain/ambassador"
	"github.com/akeren/teamup-site/domain/waitlist"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/spf13/cobra"
)

func newListCommand(logger *log.Logger) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:       "list (waitlist|ambassador)",
		Short:     "Print stored submissions, newest first",
		ValidArgs: []string{waitlist.FormName, ambassador.FormName},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.NewDatabase(logger, config.NewDBConfig())
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db, logger)

			sentFilter := models.ParseSentFilter(filter)
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			switch args[0] {
			case waitlist.FormName:
				entries, err := waitlist.NewWaitlistService(logger, waitlist.NewWaitlistRepository(db)).
					ListEntries(cmd.Context(), sentFilter)
				if err != nil {
					return err
				}
				printWaitlist(out, entries)
			case ambassador.FormName:
				apps, err := ambassador.NewApplicationService(logger, ambassador.NewApplicationRepository(db)).
					ListApplications(cmd.Context(), sentFilter)
				if err != nil {
					return err
				}
				printApplications(out, apps)
			}

			return out.Flush()
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(models.SentFilterAll), "all, sent or not_sent")
	return cmd
}

func printWaitlist(w io.Writer, entries []waitlist.WaitlistEntryResponse) {
	fmt.Fprintln(w, "ID\tEMAIL\tSENT\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", e.ID, e.Email, e.Sent, e.CreatedAt)
	}
}

func printApplications(w io.Writer, apps []ambassador.ApplicationResponse) {
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSCHOOL\tGRADE\tSENT\tCREATED")
	for _, a := range apps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\t%s\n", a.ID, a.Name, a.Email, a.School, a.Grade, a.Sent, a.CreatedAt)
	}
}
