// Package editor implements the staff content editor: one workflow over
// Products, Solutions and Cases, each carried by its own draft type.
package editor

import (
	"errors"
	"fmt"

	"github.com/Almas2004/led/internal/models"
)

// Kind discriminates the content type being edited.
type Kind string

const (
	KindProducts  Kind = "products"
	KindSolutions Kind = "solutions"
	KindCases     Kind = "cases"
)

var (
	ErrUnknownKind        = errors.New("unknown content kind")
	ErrFieldNotSupported  = errors.New("field not supported for this content kind")
	ErrInvalidValue       = errors.New("invalid field value")
	ErrImageRequired      = errors.New("an image is required")
	ErrSlugRequired       = errors.New("slug is required")
	ErrEditorClosed       = errors.New("editor is closed")
	ErrMissingID          = errors.New("item has no id")
	ErrKindMismatch       = errors.New("draft kind does not match")
	ErrUnsupportedStoreOp = errors.New("store does not support this draft")
)

// Kinds returns every editable kind.
func Kinds() []Kind {
	return []Kind{KindProducts, KindSolutions, KindCases}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindProducts, KindSolutions, KindCases:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Field names a shared form control. Which entity field a control writes to
// depends on the draft kind.
type Field string

const (
	FieldSlug     Field = "slug"
	FieldTitle    Field = "title"
	FieldCategory Field = "category"
	FieldSummary  Field = "summary"
	FieldDetails  Field = "details"
	FieldFeatured Field = "featured"
	FieldPrice    Field = "price"
	FieldPitch    Field = "pitch"
	FieldPurpose  Field = "purpose"
	FieldWidth    Field = "width"
	FieldHeight   Field = "height"
	FieldArea     Field = "area"
	FieldIncluded Field = "included"
	FieldCity     Field = "city"
	FieldDuration Field = "duration"
	FieldSpecs    Field = "specs"
	FieldResult   Field = "result"
)

var caseIndustries = []string{"Реклама", "Сцена", "Витрина", "Гос. сектор"}

// CategoryOptions returns the values selectable in the category control.
func CategoryOptions(k Kind) []string {
	switch k {
	case KindProducts, KindSolutions:
		return []string{string(models.ScreenIndoor), string(models.ScreenOutdoor)}
	case KindCases:
		return append([]string(nil), caseIndustries...)
	}
	return nil
}
