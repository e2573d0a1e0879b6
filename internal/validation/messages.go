package validation

import (
	"fmt"
	"strings"
)

var messageTemplates = map[string]string{
	KindRequired: "The %s field is required.",
	KindString:   "The %s field must be a string.",
	KindMax:      "The %s field must not be greater than %s characters.",
	KindEmail:    "The %s field must be a valid email address.",
	KindInteger:  "The %s field must be an integer.",
	KindUnique:   "The %s has already been taken.",
	KindExists:   "The selected %s is invalid.",
}

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// Message renders the failure message of rule r for field.
func Message(field string, r Rule) string {
	tmpl, ok := messageTemplates[r.Kind]
	if !ok {
		return fmt.Sprintf("The %s field is invalid.", attribute(field))
	}
	if r.Kind == KindMax {
		return fmt.Sprintf(tmpl, attribute(field), r.Param)
	}
	return fmt.Sprintf(tmpl, attribute(field))
}

// summarize returns the first message, followed by a count of the rest.
func summarize(first string, total int) string {
	switch rest := total - 1; {
	case rest <= 0:
		return first
	case rest == 1:
		return first + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
}
