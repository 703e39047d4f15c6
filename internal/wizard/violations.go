package wizard

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation represents a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations collects every validation failure of a step delta so they can
// be surfaced together, not just the first.
type Violations struct {
	Violations []Violation `json:"violations"`
}

// Empty reports whether there are no violations.
func (v Violations) Empty() bool {
	return len(v.Violations) == 0
}

func (v Violations) Error() string {
	var sb strings.Builder
	sb.WriteString("step validation failed:")
	for _, violation := range v.Violations {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", violation.Field, violation.Message))
	}
	return sb.String()
}

// stepValidator is shared across flows; validator.Validate is safe for
// concurrent use.
var stepValidator = validator.New()

// ValidateDelta validates a typed step delta and returns every violated
// rule. A non-validation error (invalid struct, bad tag) is returned as-is.
func ValidateDelta(delta any) (Violations, error) {
	err := stepValidator.Struct(delta)
	if err == nil {
		return Violations{}, nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Violations{}, err
	}

	out := Violations{Violations: make([]Violation, 0, len(validationErrors))}
	for _, ve := range validationErrors {
		out.Violations = append(out.Violations, Violation{
			Field:   ve.Field(),
			Rule:    ve.Tag(),
			Message: violationMessage(ve),
		})
	}
	return out, nil
}

// violationMessage renders a human-readable message for one failed rule.
func violationMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", ve.Field())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters or items", ve.Field(), ve.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters or items", ve.Field(), ve.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", ve.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", ve.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", ve.Field(), ve.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", ve.Field(), ve.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be below %s", ve.Field(), ve.Param())
	default:
		return fmt.Sprintf("%s failed rule %q", ve.Field(), ve.Tag())
	}
}
