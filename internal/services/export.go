package services

import (
	"strconv"
	"strings"

	"github.com/alwadigroup/alwadi-backend/internal/models"
)

// csvHeaders is the contractual column order for the feedback export.
// Consumers parse by position; do not reorder.
var csvHeaders = []string{
	"ID", "Customer Name", "Email", "Content", "Sentiment",
	"Confidence", "Rating", "Source", "Date", "Responded",
}

// BuildFeedbackCSV renders records into the export format: one header
// row, comma-joined fields, content always quoted with internal quotes
// doubled, dates in ISO-8601 UTC, responded as Yes/No.
func BuildFeedbackCSV(records []models.Feedback) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))

	for _, item := range records {
		rating := ""
		if item.Rating != nil {
			rating = strconv.Itoa(*item.Rating)
		}
		responded := "No"
		if item.IsResponded {
			responded = "Yes"
		}

		fields := []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.CustomerName,
			item.CustomerEmail,
			`"` + strings.ReplaceAll(item.Content, `"`, `""`) + `"`,
			item.Sentiment,
			strconv.FormatFloat(item.Confidence, 'g', -1, 64),
			rating,
			item.Source,
			item.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
			responded,
		}

		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}

	return b.String()
}
