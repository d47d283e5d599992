package llm

import "strings"

// maxPromptTextLen is the fixed prefix of document text included in the
// prompt. Truncation is silent and by character count, not tokens or word
// boundaries.
const maxPromptTextLen = 3000

const promptTemplate = `Analyze this document and provide:
1. A concise summary (2-3 sentences)
2. Document type (invoice, CV, report, letter, contract, etc.)
3. Extracted metadata as JSON

For metadata, extract relevant fields based on document type:
- Invoice: date, invoice_number, total_amount, vendor, client
- CV/Resume: name, email, phone, skills, experience_years
- Report: title, date, author, department
- Letter: date, sender, recipient, subject
- Contract: parties, date, contract_type, value

Document text:
{{TEXT}}

Respond ONLY with valid JSON in this format:
{
  "summary": "your summary here",
  "document_type": "type here",
  "metadata": {
    "field1": "value1",
    "field2": "value2"
  }
}`

// BuildPrompt combines the fixed instructional template with a truncated
// prefix of the document text.
func BuildPrompt(text string) string {
	return strings.Replace(promptTemplate, "{{TEXT}}", truncateRunes(text, maxPromptTextLen), 1)
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
