package llm

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// envelopeSchema constrains the types of the envelope keys when present.
// Key presence itself is handled by the normalizer (summary and document_type
// may legitimately be absent individually, see normalize).
const envelopeSchemaJSON = `{
	"type": "object",
	"properties": {
		"summary":       {"type": "string"},
		"document_type": {"type": "string"},
		"metadata":      {"type": "object"}
	}
}`

var envelopeSchema = jsonschema.MustCompileString("envelope.json", envelopeSchemaJSON)

// validateEnvelope checks the parsed completion payload against the envelope
// schema: present keys must carry the expected types.
func validateEnvelope(payload map[string]any) error {
	return envelopeSchema.Validate(payload)
}
