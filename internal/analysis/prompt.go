// Package analysis holds the pure pieces of the report analysis step:
// prompt construction, MIME classification, and defensive parsing of the
// model's response into a structured summary.
package analysis

import (
	"fmt"
	"strings"

	"healthmate-server/internal/models"
)

const promptTemplate = `You are a helpful medical assistant. Analyze this %s medical report and provide:

1. A summary in English (2-3 sentences)
2. A summary in Roman Urdu (2-3 sentences) - use simple Roman Urdu that everyone can understand
3. List any abnormal or concerning values found
4. Suggest 3-5 important questions the patient should ask their doctor
5. List 3-5 foods to avoid based on this report
6. List 3-5 foods that are beneficial to eat
7. Suggest 2-3 simple home remedies (if applicable)

Format your response EXACTLY as JSON:
{
  "english": "summary here",
  "urdu": "Roman Urdu mein summary",
  "abnormalValues": ["value1", "value2"],
  "questionsForDoctor": ["question1", "question2"],
  "foodsToAvoid": ["food1", "food2"],
  "foodsToEat": ["food1", "food2"],
  "homeRemedies": ["remedy1", "remedy2"]
}

IMPORTANT:
- Keep summaries simple and easy to understand
- For Roman Urdu, use simple conversational style
- Always mention if values are within normal range or not
- Be encouraging but realistic
- Return ONLY valid JSON, no extra text`

// BuildPrompt returns the analysis instruction for a report type. The
// template is fixed; the report type is its only parameter.
func BuildPrompt(reportType models.ReportType) string {
	return fmt.Sprintf(promptTemplate, reportType)
}

// MIMEType derives the MIME type for analysis from the stored file's URL
// suffix. This is a heuristic, not a content sniff: PDF is checked first,
// then PNG, and everything else is treated as JPEG.
func MIMEType(fileURL string) string {
	lower := strings.ToLower(fileURL)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	default:
		return "image/jpeg"
	}
}
