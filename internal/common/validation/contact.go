package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Form steps of the progressive contact form.
const (
	FirstFormStep = 1
	LastFormStep  = 5
)

func str(minLen, maxLen int) map[string]interface{} {
	p := map[string]interface{}{"type": "string"}
	if minLen > 0 {
		p["minLength"] = minLen
	}
	if maxLen > 0 {
		p["maxLength"] = maxLen
	}
	return p
}

// optional allows an explicit null, which the form sends for untouched fields.
func optional(maxLen int) map[string]interface{} {
	p := map[string]interface{}{"type": []string{"string", "null"}}
	if maxLen > 0 {
		p["maxLength"] = maxLen
	}
	return p
}

func object(required []string, props map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"required":   required,
		"properties": props,
	}
}

// ContactSubmissionSchema describes a full one-shot contact submission.
var ContactSubmissionSchema = object(
	[]string{"firstName", "lastName", "email"},
	map[string]interface{}{
		"firstName":          str(1, 100),
		"lastName":           str(1, 100),
		"email":              map[string]interface{}{"type": "string", "format": "email"},
		"company":            optional(255),
		"jobTitle":           optional(255),
		"phone":              optional(50),
		"companySize":        optional(0),
		"industry":           optional(100),
		"budgetRange":        optional(0),
		"projectTimeline":    optional(0),
		"projectDescription": optional(0),
		"aiExperience":       optional(0),
		"specificChallenges": optional(0),
		"currentAiTools":     optional(0),
		"expectedOutcomes":   optional(0),
		"formStep":           map[string]interface{}{"type": "integer", "minimum": FirstFormStep, "maximum": LastFormStep},
		"utmSource":          optional(100),
		"utmMedium":          optional(100),
		"utmCampaign":        optional(100),
		"referrer":           optional(500),
		"additionalData":     map[string]interface{}{"type": []string{"object", "null"}},
	},
)

// StepSchemas holds the fields each form step must supply.
var StepSchemas = map[int]map[string]interface{}{
	1: object(
		[]string{"firstName", "lastName", "email"},
		map[string]interface{}{
			"firstName": str(1, 100),
			"lastName":  str(1, 100),
			"email":     map[string]interface{}{"type": "string", "format": "email"},
		},
	),
	2: object(
		[]string{"company", "jobTitle", "companySize"},
		map[string]interface{}{
			"company":     str(1, 255),
			"jobTitle":    str(1, 255),
			"phone":       optional(50),
			"companySize": str(1, 0),
		},
	),
	3: object(
		[]string{"industry", "budgetRange", "projectTimeline"},
		map[string]interface{}{
			"industry":        str(1, 100),
			"budgetRange":     str(1, 0),
			"projectTimeline": str(1, 0),
		},
	),
	4: object(
		[]string{"projectDescription", "aiExperience", "specificChallenges"},
		map[string]interface{}{
			"projectDescription": str(10, 0),
			"aiExperience":       str(1, 0),
			"specificChallenges": str(10, 0),
		},
	),
	5: object(
		[]string{"expectedOutcomes"},
		map[string]interface{}{
			"currentAiTools":   optional(0),
			"expectedOutcomes": str(10, 0),
		},
	),
}

var (
	submissionSchema = mustCompile(ContactSubmissionSchema)
	stepSchemas      = compileSteps()
)

func mustCompile(schema map[string]interface{}) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("validation: invalid built-in schema: %v", err))
	}
	return s
}

func compileSteps() map[int]*gojsonschema.Schema {
	compiled := make(map[int]*gojsonschema.Schema, len(StepSchemas))
	for step, schema := range StepSchemas {
		compiled[step] = mustCompile(schema)
	}
	return compiled
}

// ValidateContactSubmission checks a full submission document.
func ValidateContactSubmission(doc map[string]interface{}) (*ValidationResult, error) {
	return validateDocument(submissionSchema, doc)
}

// ValidateContactStep checks the fields of one form step. Fields that belong
// to other steps are ignored.
func ValidateContactStep(step int, doc map[string]interface{}) (*ValidationResult, error) {
	schema, ok := stepSchemas[step]
	if !ok {
		return nil, fmt.Errorf("form step %d is outside %d..%d", step, FirstFormStep, LastFormStep)
	}
	return validateDocument(schema, doc)
}

func validateDocument(schema *gojsonschema.Schema, doc map[string]interface{}) (*ValidationResult, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if p, ok := desc.Details()["property"].(string); ok {
				field = p
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

const unsafeChars = `<>"'\/`

// Sanitize drops markup-significant characters, truncates to maxLen runes and
// trims surrounding whitespace.
func Sanitize(s string, maxLen int) string {
	if s == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return -1
		}
		return r
	}, s)
	if runes := []rune(cleaned); maxLen > 0 && len(runes) > maxLen {
		cleaned = string(runes[:maxLen])
	}
	return strings.TrimSpace(cleaned)
}
