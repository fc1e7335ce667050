package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for entity structs.
var validate *validator.Validate

func init() {
	validate = validator.New()
	// "required" accepts all-whitespace strings; notblank does not.
	if err := validate.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("registering notblank validation: %v", err))
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateStruct runs tag-based validation and converts failures into a
// validation error listing the offending fields.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewInternalError("validating %T: %v", s, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("field %s fails rule %q", fe.Field(), fe.Tag()))
	}
	return NewValidationError("invalid %s: %s", structName(s), strings.Join(msgs, "; "))
}

func structName(s any) string {
	switch s.(type) {
	case *Project, Project:
		return "project"
	case *Task, Task:
		return "task"
	default:
		return fmt.Sprintf("%T", s)
	}
}
