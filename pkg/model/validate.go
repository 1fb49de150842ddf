package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError aggregates every structural problem found in a metadata
// tree.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "model: invalid form metadata"
	}
	return "model: invalid form metadata: " + strings.Join(e.Problems, "; ")
}

// Validate checks the metadata tree for structural problems: missing control
// names or section labels, unknown control types, option lists without ids,
// and duplicate control names (which would overwrite each other when
// serialised). It does not evaluate values; use the form package for that.
func Validate(meta FormMeta) error {
	var problems []string

	if err := structValidator().Struct(meta); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("model: validate: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	seen := make(map[string]Ref)
	meta.Walk(func(ref Ref, control Control) bool {
		if control.Name == "" {
			return true
		}
		if first, dup := seen[control.Name]; dup {
			problems = append(problems, fmt.Sprintf(
				"duplicate control name %q at %s (first defined at %s)",
				control.Name, ref, first,
			))
			return true
		}
		seen[control.Name] = ref
		return true
	})

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func describeFieldError(fe validator.FieldError) string {
	path := strings.TrimPrefix(fe.Namespace(), "FormMeta.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", path, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q check", path, fe.Tag())
	}
}

// String renders the ref as section/group/control indices.
func (r Ref) String() string {
	return fmt.Sprintf("sections[%d].groups[%d].controls[%d]", r.Section, r.Group, r.Control)
}
