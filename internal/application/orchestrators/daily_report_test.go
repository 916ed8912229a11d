package orchestrators_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shiftboard/internal/adapters/email"
	"shiftboard/internal/application/orchestrators"
	"shiftboard/internal/application/projections"
	"shiftboard/internal/domain/attendance"
)

type mockSender struct {
	sent    []email.SendRequest
	sendErr error
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}

func TestExecuteSendDailyReport(t *testing.T) {
	sender := &mockSender{}
	input := orchestrators.DailyReportInput{
		Date: "2026-09-19",
		To:   "captain@example.jp",
		Rows: []projections.WorkReportRow{
			{Name: "山田太郎", Status: attendance.StatusPresent, Formatted: "01:01:01"},
			{Name: "佐藤花子", Status: attendance.StatusAbsent, Formatted: "00:00:04"},
		},
	}
	deps := orchestrators.DailyReportDeps{
		Sender: sender,
		From:   "将棋部シフトボード <noreply@example.jp>",
	}

	if err := orchestrators.ExecuteSendDailyReport(context.Background(), input, deps); err != nil {
		t.Fatalf("ExecuteSendDailyReport failed: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(sender.sent))
	}
	req := sender.sent[0]
	if req.To[0] != "captain@example.jp" {
		t.Errorf("unexpected recipient %q", req.To[0])
	}
	if !strings.Contains(req.Subject, "2026-09-19") {
		t.Errorf("subject %q should contain the date", req.Subject)
	}
	for _, want := range []string{"山田太郎", "01:01:01", "出勤中", "佐藤花子", "00:00:04", "退勤"} {
		if !strings.Contains(req.HTML, want) {
			t.Errorf("report body missing %q", want)
		}
	}
}

func TestExecuteSendDailyReportValidation(t *testing.T) {
	deps := orchestrators.DailyReportDeps{Sender: &mockSender{}}

	err := orchestrators.ExecuteSendDailyReport(context.Background(), orchestrators.DailyReportInput{Date: "2026-09-19"}, deps)
	if err == nil {
		t.Error("expected error for missing recipient")
	}

	err = orchestrators.ExecuteSendDailyReport(context.Background(),
		orchestrators.DailyReportInput{Date: "2026-09-19", To: "a@example.jp"},
		orchestrators.DailyReportDeps{})
	if err == nil {
		t.Error("expected error for missing sender")
	}
}

func TestExecuteSendDailyReportSendFailure(t *testing.T) {
	sender := &mockSender{sendErr: errors.New("provider down")}
	input := orchestrators.DailyReportInput{Date: "2026-09-19", To: "a@example.jp"}
	deps := orchestrators.DailyReportDeps{Sender: sender}

	if err := orchestrators.ExecuteSendDailyReport(context.Background(), input, deps); err == nil {
		t.Error("expected send failure to propagate")
	}
}
