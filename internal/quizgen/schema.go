package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://quiz-document.json"

// quizSchema is the JSON contract of a serialized QuizDocument.
var quizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"chapter_number": map[string]any{"type": "integer"},
		"chapter_title":  map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string", "minLength": 1},
						"minItems":    OptionCount,
						"maxItems":    OptionCount,
						"uniqueItems": true,
					},
					"correct_answer": map[string]any{
						"type":    "integer",
						"minimum": 0,
						"maximum": OptionCount - 1,
					},
				},
				"required": []any{"question", "options", "correct_answer"},
			},
		},
	},
	"required": []any{"chapter_number", "chapter_title", "questions"},
}

var compiledQuizSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants plain decoded JSON values, not Go ints.
	raw, err := json.Marshal(quizSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse quiz schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(quizSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(quizSchemaURL)
})

// ValidateQuiz checks a QuizDocument against the output contract.
func ValidateQuiz(doc QuizDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	return ValidateQuizJSON(raw)
}

// ValidateQuizJSON checks serialized quiz JSON against the output contract.
func ValidateQuizJSON(raw []byte) error {
	schema, err := compiledQuizSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("quiz does not match schema: %w", err)
	}
	return nil
}
