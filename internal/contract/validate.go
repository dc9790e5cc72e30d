package contract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// ErrInvalidPayload matches every validation failure returned by this package.
var ErrInvalidPayload = errors.New("contract: invalid payload")

// Default monthly axis keys.
const (
	DefaultXKey = "month"
	DefaultYKey = "value"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// FieldError describes one offending field by its JSON path.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every problem found in a payload.
type ValidationError struct {
	Page   Page
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("contract: invalid %s payload: %s", e.Page, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidPayload) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPayload
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks the overview document at the boundary.
func (r *OverviewResponse) Validate() error {
	verr := &ValidationError{Page: PageOverview}
	if r == nil {
		verr.add("payload", "is required")
		return verr
	}
	collect(verr, validate.Struct(r))

	seen := make(map[string]int, len(r.Activity))
	for i, item := range r.Activity {
		path := fmt.Sprintf("activity[%d].id", i)
		if item.ID.IsZero() {
			verr.add(path, "is required")
			continue
		}
		if first, ok := seen[item.ID.String()]; ok {
			verr.add(path, fmt.Sprintf("duplicates activity[%d].id", first))
			continue
		}
		seen[item.ID.String()] = i
	}

	if m := r.Monthly; m != nil {
		if m.Style != nil && m.Style.BarRadius != nil {
			for i, v := range m.Style.BarRadius {
				if v < 0 {
					verr.add(fmt.Sprintf("monthly.style.barRadius[%d]", i), "must be >= 0")
				}
			}
		}
		xKey, yKey := m.AxisKeys()
		for i, point := range m.Series {
			if _, ok := point[xKey]; !ok {
				verr.add(fmt.Sprintf("monthly.series[%d].%s", i, xKey), "is required")
			}
			raw, ok := point[yKey]
			if !ok {
				verr.add(fmt.Sprintf("monthly.series[%d].%s", i, yKey), "is required")
				continue
			}
			y, err := cast.ToFloat64E(raw)
			if err != nil {
				verr.add(fmt.Sprintf("monthly.series[%d].%s", i, yKey), "must be a number")
				continue
			}
			if y < 0 {
				verr.add(fmt.Sprintf("monthly.series[%d].%s", i, yKey), "must be >= 0")
			}
		}
	}
	return verr.orNil()
}

// Validate checks the insights document at the boundary.
func (r *InsightsResponse) Validate() error {
	verr := &ValidationError{Page: PageInsights}
	if r == nil {
		verr.add("payload", "is required")
		return verr
	}
	collect(verr, validate.Struct(r))
	return verr.orNil()
}

// AxisKeys returns the configured x and y keys with their defaults.
func (m *OverviewMonthly) AxisKeys() (string, string) {
	x, y := DefaultXKey, DefaultYKey
	if m == nil || m.Keys == nil {
		return x, y
	}
	if m.Keys.X != "" {
		x = m.Keys.X
	}
	if m.Keys.Y != "" {
		y = m.Keys.Y
	}
	return x, y
}

func collect(verr *ValidationError, err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("payload", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe.Namespace()), reason(fe))
	}
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	default:
		return "failed " + fe.Tag()
	}
}
