package status

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/crimewatch-access/models"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Render writes r to w as styled tables.
func Render(w io.Writer, r Report) error {
	_, err := io.WriteString(w, appStyle.Render(renderReport(r))+"\n")
	return err
}

func renderReport(r Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Access control status"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("generated " + r.GeneratedAt.Format(timeLayout)))
	b.WriteString("\n")

	section(&b, fmt.Sprintf("Users (%d)", len(r.Users)),
		[]string{"ID", "Username", "Role", "Active", "Predictions today", "Quota date", "Last login"},
		usersRows(r.Users))

	section(&b, fmt.Sprintf("Recent audit entries (last %d)", AuditLimit),
		[]string{"Time", "User", "Action", "Details"},
		auditRows(r.RecentAudit))

	section(&b, fmt.Sprintf("Open sessions (%d)", len(r.OpenSessions)),
		[]string{"ID", "User", "Login"},
		openSessionRows(r.OpenSessions))

	section(&b, fmt.Sprintf("Recent sessions (last %d)", SessionLimit),
		[]string{"ID", "User", "Login", "Logout", "Minutes"},
		recentSessionRows(r.RecentSessions))

	section(&b, fmt.Sprintf("Recent predictions (last %d)", AttributionSize),
		[]string{"Time", "User", "Location", "Date", "Items"},
		predictionRows(r.Predictions))

	section(&b, fmt.Sprintf("Recent reports (last %d)", AttributionSize),
		[]string{"Time", "User", "Type", "Location", "File"},
		reportRows(r.Reports))

	return b.String()
}

func section(b *strings.Builder, title string, headers []string, rows [][]string) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(helpStyle.Render("  none"))
		b.WriteString("\n")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
}

func usersRows(users []models.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		active := "yes"
		if !u.Active {
			active = "no"
		}
		rows = append(rows, []string{
			strconv.FormatInt(u.UserID, 10),
			u.Username,
			u.Role.String(),
			active,
			strconv.Itoa(u.DailyPredictionCount),
			orDash(u.LastPredictionDate),
			formatTimePtr(u.LastLogin),
		})
	}
	return rows
}

func auditRows(entries []models.AuditEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp.Local().Format(timeLayout), e.Username, e.Action, orDash(e.Details)})
	}
	return rows
}

func openSessionRows(sessions []models.Session) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{strconv.FormatInt(s.ID, 10), sessionUser(s), s.LoginTime.Local().Format(timeLayout)})
	}
	return rows
}

func recentSessionRows(sessions []models.Session) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		minutes := "-"
		if s.DurationMinutes != nil {
			minutes = strconv.FormatInt(*s.DurationMinutes, 10)
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			sessionUser(s),
			s.LoginTime.Local().Format(timeLayout),
			formatTimePtr(s.LogoutTime),
			minutes,
		})
	}
	return rows
}

func predictionRows(records []models.PredictionRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{p.Timestamp.Local().Format(timeLayout), p.Username, p.Location, p.PredictionDate, orDash(p.PredictedItems)})
	}
	return rows
}

func reportRows(records []models.ReportRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.GeneratedAt.Local().Format(timeLayout), r.Username, r.ReportType, orDash(r.Location), r.FilePath})
	}
	return rows
}

// sessionUser names the owner; guest sessions have no user row.
func sessionUser(s models.Session) string {
	if s.UserID == nil {
		return models.GuestUsername
	}
	return s.Username
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
