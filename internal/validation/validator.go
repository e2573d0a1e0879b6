package validation

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/repository"

	"github.com/go-playground/validator/v10"
	otelattribute "go.opentelemetry.io/otel/attribute"
)

// Values holds the normalized fields that passed validation. Absent fields
// have no key.
type Values map[string]any

// Has reports whether name was supplied.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the string value of name, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Uint returns the normalized integer value of name.
func (v Values) Uint(name string) (uint, bool) {
	u, ok := v[name].(uint)
	return u, ok
}

// Validator evaluates rule sets. Presence and format rules run through
// go-playground/validator; unique and exists query the store.
type Validator struct {
	engine *validator.Validate
	lookup repository.RecordLookup
}

// New returns a Validator that resolves store-backed rules through lookup.
func New(lookup repository.RecordLookup) *Validator {
	engine := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty or reserved tag names.
	if err := engine.RegisterValidation(KindString, isString); err != nil {
		panic(err)
	}
	if err := engine.RegisterValidation(KindInteger, isInteger); err != nil {
		panic(err)
	}
	return &Validator{engine: engine, lookup: lookup}
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isInteger(fl validator.FieldLevel) bool {
	_, ok := toInt64(fl.Field().Interface())
	return ok
}

// toInt64 accepts JSON numbers with no fractional part and decimal integer strings.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Validate checks payload against rs. Every field is evaluated and all
// failures are collected; within a field, a failing required or type rule
// stops that field. On success the normalized values of the rule set's fields
// are returned. A store failure aborts validation with an internal error.
func (v *Validator) Validate(ctx context.Context, rs RuleSet, payload map[string]any) (Values, error) {
	span, ctx := observability.NewSpan(ctx, "validation.Validate", otelattribute.String("rule_set", rs.Name))
	defer span.End()

	values := Values{}
	failures := map[string][]string{}
	var order []string
	total := 0

	for _, field := range rs.Fields {
		raw, present := payload[field.Name]
		if field.Sometimes && !present {
			continue
		}

		value := normalize(raw)
		msgs, err := v.validateField(ctx, field, value)
		if err != nil {
			span.SetError(err)
			return nil, models.NewInternalError(err)
		}
		if len(msgs) > 0 {
			failures[field.Name] = msgs
			order = append(order, field.Name)
			total += len(msgs)
			continue
		}
		if value != nil {
			values[field.Name] = finalize(field, value)
		}
	}

	if total > 0 {
		observability.ValidationFailures.WithLabelValues(rs.Name).Inc()
		return nil, models.NewFieldValidationError(summarize(failures[order[0]][0], total), failures)
	}
	return values, nil
}

func (v *Validator) validateField(ctx context.Context, field Field, value any) ([]string, error) {
	var msgs []string

	for _, rule := range field.Rules {
		if value == nil {
			if rule.Kind == KindRequired {
				return []string{Message(field.Name, rule)}, nil
			}
			continue
		}

		ok, err := v.check(ctx, rule, value)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		msgs = append(msgs, Message(field.Name, rule))
		if rule.Kind == KindRequired || rule.Kind == KindString || rule.Kind == KindInteger {
			break
		}
	}
	return msgs, nil
}

func (v *Validator) check(ctx context.Context, rule Rule, value any) (bool, error) {
	switch rule.Kind {
	case KindRequired:
		return isPresent(value), nil
	case KindString, KindInteger, KindEmail:
		return v.engine.VarCtx(ctx, value, rule.Kind) == nil, nil
	case KindMax:
		return v.engine.VarCtx(ctx, value, "max="+rule.Param) == nil, nil
	case KindUnique, KindExists:
		lookupValue := value
		if rule.Column == "id" {
			n, ok := toInt64(value)
			if !ok {
				return false, nil
			}
			lookupValue = n
		}
		found, err := v.lookup.RecordExists(ctx, repository.LookupQuery{
			Table:    rule.Table,
			Column:   rule.Column,
			Value:    lookupValue,
			IgnoreID: rule.IgnoreID,
		})
		if err != nil {
			return false, err
		}
		if rule.Kind == KindUnique {
			return !found, nil
		}
		return found, nil
	default:
		return false, fmt.Errorf("unknown validation rule %q", rule.Kind)
	}
}

// isPresent mirrors the required rule: empty arrays and objects are missing.
// Strings were already trimmed to nil when empty.
func isPresent(value any) bool {
	switch t := value.(type) {
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// normalize trims strings and turns empty strings into nil.
func normalize(raw any) any {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return s
	}
	return raw
}

// finalize converts validated integers to uint.
func finalize(field Field, value any) any {
	for _, r := range field.Rules {
		if r.Kind != KindInteger {
			continue
		}
		if n, ok := toInt64(value); ok && n >= 0 {
			return uint(n)
		}
	}
	return value
}
