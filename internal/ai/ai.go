// Package ai abstracts the hosted model used to analyze uploaded reports.
package ai

import "context"

// Client is the analysis boundary. Implementations return the model's raw
// text response; no structural contract is enforced here. Callers must
// treat the response as possibly-invalid JSON wrapped in prose.
type Client interface {
	// AnalyzeDocument sends the document bytes and instruction prompt to
	// the model and returns its raw text response.
	AnalyzeDocument(ctx context.Context, fileData []byte, mimeType, prompt string) (string, error)
}
