package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docdesk/internal/client/views"
)

func (a *App) showDashboard(ctx context.Context) error {
	if err := a.dash.Load(ctx); err != nil {
		return err
	}

	s, _ := a.dash.Stats()
	name := "there"
	if u, ok := a.session.User(); ok {
		name = u.DisplayName()
	}

	a.heading("Welcome back, %s", name)
	fmt.Fprintf(a.out, "  %-22s %d\n", "Total documents", s.TotalDocuments)
	fmt.Fprintf(a.out, "  %-22s %d\n", "Uploaded this week", s.RecentDocuments)
	fmt.Fprintf(a.out, "  %-22s %d\n", "Searches and questions", s.SearchAndQuestionCount)
	fmt.Fprintf(a.out, "  %-22s %s\n", "Storage used", views.FormatStorage(s.StorageUsed))

	if len(s.RecentActivities) == 0 {
		a.info("\nNo recent activity.")
		return nil
	}
	a.heading("Recent activity")
	for _, act := range s.RecentActivities {
		line := fmt.Sprintf("  %s %s", warnColor.Sprintf("%-13s", act.Type.Label()), act.Description)
		if act.DocumentTitle != nil && *act.DocumentTitle != "" {
			line += fmt.Sprintf(" (%s)", *act.DocumentTitle)
		}
		fmt.Fprintf(a.out, "%s %s\n", line, dimColor.Sprint(act.TimeAgo))
	}
	return nil
}
