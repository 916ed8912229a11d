package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"shiftboard/internal/adapters/email"
	"shiftboard/internal/application/projections"
	"shiftboard/internal/domain/attendance"
)

// DailyReportInput carries input for the daily report orchestrator.
type DailyReportInput struct {
	Date string // YYYY-MM-DD of the report
	To   string // recipient address
	Rows []projections.WorkReportRow
}

// DailyReportDeps holds dependencies for SendDailyReport.
type DailyReportDeps struct {
	Sender  email.Sender
	From    string
	ReplyTo string
}

var reportTmpl = template.Must(template.New("report").Parse(`<h2>勤務時間レポート {{.Date}}</h2>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>名前</th><th>総勤務時間</th><th>現在の状況</th></tr>
{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Formatted}}</td><td>{{if .Present}}出勤中{{else}}退勤{{end}}</td></tr>
{{end}}</table>`))

type reportRow struct {
	Name      string
	Formatted string
	Present   bool
}

// ExecuteSendDailyReport renders the work report as HTML and sends it to the
// configured recipient.
// PRE: input.To is non-empty, deps.Sender is configured
// POST: Report email queued with the provider
func ExecuteSendDailyReport(ctx context.Context, input DailyReportInput, deps DailyReportDeps) error {
	if input.To == "" {
		return errors.New("report recipient is required")
	}
	if deps.Sender == nil {
		return errors.New("email sender is not configured")
	}

	rows := make([]reportRow, len(input.Rows))
	for i, r := range input.Rows {
		rows[i] = reportRow{
			Name:      r.Name,
			Formatted: r.Formatted,
			Present:   r.Status == attendance.StatusPresent,
		}
	}

	var body strings.Builder
	if err := reportTmpl.Execute(&body, map[string]any{"Date": input.Date, "Rows": rows}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	result, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{input.To},
		From:    deps.From,
		Subject: fmt.Sprintf("勤務時間レポート %s", input.Date),
		HTML:    body.String(),
		ReplyTo: deps.ReplyTo,
	})
	if err != nil {
		return err
	}

	slog.Info("admin_event", "event", "daily_report_sent", "to", input.To, "date", input.Date, "message_id", result.MessageID)
	return nil
}
