package analysis

import (
	"encoding/json"
	"errors"
	"strings"

	"healthmate-server/internal/models"
)

// Disclaimer is appended to every persisted summary, model-generated or not.
const Disclaimer = "This AI analysis is for informational purposes only. Always consult your doctor before making any medical decisions. / Yeh AI analysis sirf samajhne ke liye hai, ilaaj ke liye nahi. Apne doctor se zaroor mashwara karen."

// ErrNoJSON is returned when the model response contains no JSON object.
var ErrNoJSON = errors.New("no JSON object in model response")

// extractJSON pulls the first '{' through the last '}' out of a response
// that may wrap the JSON in prose or a markdown fence.
func extractJSON(response string) (string, bool) {
	start := strings.Index(response, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(response, "}")
	if end == -1 || end < start {
		return "", false
	}
	return response[start : end+1], true
}

// ParseSummary parses the model's raw text response into a summary. The
// response is not trusted to be pure JSON. The returned summary carries
// the shared disclaimer.
func ParseSummary(raw string) (*models.AISummary, error) {
	jsonContent, ok := extractJSON(strings.TrimSpace(raw))
	if !ok {
		return nil, ErrNoJSON
	}

	var summary models.AISummary
	if err := json.Unmarshal([]byte(jsonContent), &summary); err != nil {
		return nil, errors.New("failed to parse JSON response: " + err.Error())
	}

	summary.Disclaimer = Disclaimer
	return &summary, nil
}

// FallbackSummary returns the fixed summary substituted whenever analysis
// fails. AI unavailability must never block report storage, so the pipeline
// persists this instead of surfacing an error.
func FallbackSummary() *models.AISummary {
	return &models.AISummary{
		English: "Unable to analyze report automatically. Please consult your doctor for detailed interpretation.",
		Urdu:    "Report ka analysis nahi ho saka. Apne doctor se milkar is report ko samjhen.",
		AbnormalValues: []string{},
		QuestionsForDoctor: []string{
			"What do these results mean for my health?",
			"Do I need any follow-up tests?",
			"Are there any lifestyle changes I should make?",
		},
		FoodsToAvoid: []string{},
		FoodsToEat:   []string{},
		HomeRemedies: []string{},
		Disclaimer:   Disclaimer,
	}
}
