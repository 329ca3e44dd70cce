package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// QuizOutputSchema is the JSON Schema a generated quiz must satisfy. It is
// embedded verbatim into the generation prompt.
const QuizOutputSchema = `{
  "title": "QuizOutput",
  "type": "object",
  "properties": {
    "title": {
      "type": "string",
      "description": "Title of the Wikipedia article"
    },
    "summary": {
      "type": "string",
      "minLength": 1,
      "description": "Brief 2-3 sentence summary of the article"
    },
    "questions": {
      "type": "array",
      "minItems": 5,
      "maxItems": 10,
      "description": "List of 5-10 quiz questions",
      "items": {
        "type": "object",
        "properties": {
          "question": {"type": "string", "minLength": 1, "description": "The quiz question text"},
          "options": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "items": {"type": "string", "minLength": 1},
            "description": "List of 4 multiple choice options"
          },
          "correct_answer": {"type": "string", "minLength": 1, "description": "The correct answer, copied exactly from options"},
          "explanation": {"type": "string", "minLength": 1, "description": "Brief explanation of why the answer is correct"}
        },
        "required": ["question", "options", "correct_answer", "explanation"]
      }
    },
    "key_entities": {
      "type": "array",
      "minItems": 3,
      "maxItems": 5,
      "items": {"type": "string", "minLength": 1},
      "description": "List of 3-5 key entities/concepts from the article"
    },
    "related_topics": {
      "type": "array",
      "minItems": 3,
      "maxItems": 5,
      "items": {"type": "string", "minLength": 1},
      "description": "List of 3-5 related topics for further reading"
    }
  },
  "required": ["title", "summary", "questions", "key_entities", "related_topics"]
}`

var quizSchemaLoader = gojsonschema.NewStringLoader(QuizOutputSchema)

// SchemaError lists every violation found in a payload.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Violations, "; "))
}

// ValidateQuizPayload checks raw JSON against QuizOutputSchema. It catches
// missing fields and wrong types that json.Unmarshal would zero-fill.
func ValidateQuizPayload(payload []byte) error {
	result, err := gojsonschema.Validate(quizSchemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation could not run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return &SchemaError{Violations: violations}
}
