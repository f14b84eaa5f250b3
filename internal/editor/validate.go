package editor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(fmt.Sprintf("editor: register notblank validation: %v", err))
	}
	return v
}

// Validate reports whether d may be persisted. Images are checked first, so
// a draft missing both reports ErrImageRequired.
func Validate(d Draft) error {
	if d == nil {
		return ErrEditorClosed
	}
	c := d.Common()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate draft: %w", err)
	}
	failed := map[string]bool{}
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	switch {
	case failed["Images"]:
		return ErrImageRequired
	case failed["Slug"]:
		return ErrSlugRequired
	}
	return fmt.Errorf("%w: %s", ErrInvalidValue, verrs.Error())
}
