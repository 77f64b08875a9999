package reports

import (
	"fmt"
	"strings"
	"time"

	"zvitbot/internal/ports"
)

// Output truncation policy: at most 10 records rendered in full, each long
// field capped independently, and the composed message capped at the platform
// ceiling.
const (
	maxRenderedRecords = 10
	operationBudget    = 100
	descriptionBudget  = 200
	messageCeiling     = 2000

	noneFoundMessage = "❗ За запитом нічого не знайдено."
	noRecordsMessage = "Немає записів."
	notSpecified     = "Не вказано"
)

// ellipsize caps s at max runes, replacing the tail with an ellipsis marker.
func ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// capMessage enforces the platform message-length ceiling.
func capMessage(s string) string {
	return ellipsize(s, messageCeiling)
}

func formatCreatedAt(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("02.01.2006, 15:04:05")
}

// FormatLine is the one-line list representation of a record.
func FormatLine(r ports.Report) string {
	return fmt.Sprintf("**№%d** — %s (Static: %s) — %s", r.ID, r.FullName, r.Static, formatCreatedAt(r.CreatedAt))
}

// FormatDetail adds the truncated operation and description fields.
func FormatDetail(r ports.Report) string {
	return fmt.Sprintf(
		"%s\nОперація: %s\nОпис: %s",
		FormatLine(r),
		ellipsize(r.Operation, operationBudget),
		ellipsize(r.Description, descriptionBudget),
	)
}

// FormatFull is the single-record view for exact-id lookups: untruncated
// fields plus the issuer, with a fallback for rows predating the issued_by
// column.
func FormatFull(r ports.Report) string {
	issuedBy := notSpecified
	if r.IssuedBy != nil && *r.IssuedBy != "" {
		issuedBy = *r.IssuedBy
	}
	return fmt.Sprintf(
		"%s\nОперація: %s\nОпис: %s\nВидано: %s",
		FormatLine(r),
		r.Operation,
		r.Description,
		issuedBy,
	)
}

// ComposeSearch renders a substring-search result set into one message.
func ComposeSearch(rows []ports.Report) string {
	if len(rows) == 0 {
		return noneFoundMessage
	}

	if len(rows) > maxRenderedRecords {
		rows = rows[:maxRenderedRecords]
	}

	chunks := make([]string, 0, len(rows))
	for _, r := range rows {
		chunks = append(chunks, FormatDetail(r))
	}
	return capMessage(strings.Join(chunks, "\n\n"))
}

// ComposeList renders the recent-records view, one line per record.
func ComposeList(rows []ports.Report) string {
	if len(rows) == 0 {
		return noRecordsMessage
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, FormatLine(r))
	}
	return capMessage(strings.Join(lines, "\n"))
}

// ComposeIDResult renders an exact-id lookup.
func ComposeIDResult(rows []ports.Report) string {
	if len(rows) == 0 {
		return noneFoundMessage
	}
	return capMessage(FormatFull(rows[0]))
}
