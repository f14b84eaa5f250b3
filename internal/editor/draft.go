package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Almas2004/led/internal/models"
	"github.com/lib/pq"
)

// Common is the part of every draft the editor validates regardless of kind.
type Common struct {
	ID         int64
	Slug       string   `validate:"notblank"`
	Images     []string `validate:"min=1"`
	IsFeatured bool
}

// Draft is an in-progress item of one content kind. The set of
// implementations is closed: *ProductDraft, *SolutionDraft, *CaseDraft.
type Draft interface {
	Kind() Kind
	Common() Common
	Fields() []Field
	Get(f Field) (string, error)
	Set(f Field, value string) error

	setImage(uri string)
	bindings() map[Field]binding
}

type binding struct {
	get func() string
	set func(string) error
}

// ProductDraft edits a models.Product.
type ProductDraft struct{ Item models.Product }

// SolutionDraft edits a models.Solution.
type SolutionDraft struct{ Item models.Solution }

// CaseDraft edits a models.Case.
type CaseDraft struct{ Item models.Case }

// NewDraft seeds a fresh item of the given kind. The placeholder slug is
// derived from now so two drafts opened in different milliseconds differ.
func NewDraft(kind Kind, now time.Time) (Draft, error) {
	slug := fmt.Sprintf("item-%d", now.UnixMilli())
	zero := 0.0

	switch kind {
	case KindProducts:
		return &ProductDraft{Item: models.Product{
			Slug:               slug,
			Type:               models.ScreenIndoor,
			Purpose:            []string{},
			PixelPitch:         "2.5",
			PriceFrom:          &zero,
			IPRating:           "IP20",
			RefreshRate:        1920,
			Brightness:         800,
			Warranty:           3,
			LeadTime:           15,
			ViewingDistanceMin: 2,
			ViewingDistanceMax: 10,
			Images:             []string{},
			IsFeatured:         true,
		}}, nil
	case KindSolutions:
		return &SolutionDraft{Item: models.Solution{
			Slug:       slug,
			Type:       models.ScreenIndoor,
			Width:      2,
			Height:     1,
			Area:       2,
			PixelPitch: "2.5",
			Included:   []string{"Экран", "Монтаж", "Настройка"},
			Images:     []string{},
			IsFeatured: true,
		}}, nil
	case KindCases:
		return &CaseDraft{Item: models.Case{
			Slug:       slug,
			City:       "Алматы",
			Industry:   "Реклама",
			Duration:   5,
			Specs:      []string{},
			Images:     []string{},
			IsFeatured: true,
		}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// DraftFrom wraps an existing item for editing. The item is copied; the
// caller's value is never modified.
func DraftFrom(item models.Content) (Draft, error) {
	switch v := item.(type) {
	case *models.Product:
		return &ProductDraft{Item: cloneProduct(*v)}, nil
	case *models.Solution:
		return &SolutionDraft{Item: cloneSolution(*v)}, nil
	case *models.Case:
		return &CaseDraft{Item: cloneCase(*v)}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownKind, item)
}

func (d *ProductDraft) Kind() Kind  { return KindProducts }
func (d *SolutionDraft) Kind() Kind { return KindSolutions }
func (d *CaseDraft) Kind() Kind     { return KindCases }

func (d *ProductDraft) Common() Common {
	return Common{ID: d.Item.ID, Slug: d.Item.Slug, Images: d.Item.Images, IsFeatured: d.Item.IsFeatured}
}

func (d *SolutionDraft) Common() Common {
	return Common{ID: d.Item.ID, Slug: d.Item.Slug, Images: d.Item.Images, IsFeatured: d.Item.IsFeatured}
}

func (d *CaseDraft) Common() Common {
	return Common{ID: d.Item.ID, Slug: d.Item.Slug, Images: d.Item.Images, IsFeatured: d.Item.IsFeatured}
}

func (d *ProductDraft) setImage(uri string)  { d.Item.Images = firstImage(d.Item.Images, uri) }
func (d *SolutionDraft) setImage(uri string) { d.Item.Images = firstImage(d.Item.Images, uri) }
func (d *CaseDraft) setImage(uri string)     { d.Item.Images = firstImage(d.Item.Images, uri) }

func (d *ProductDraft) bindings() map[Field]binding {
	p := &d.Item
	return map[Field]binding{
		FieldSlug:     slugBinding(&p.Slug),
		FieldTitle:    textBinding(&p.Name),
		FieldCategory: screenTypeBinding(&p.Type),
		FieldSummary:  textBinding(&p.ShortDescription),
		FieldDetails:  textBinding(&p.FullDescription),
		FieldFeatured: boolBinding(&p.IsFeatured),
		FieldPrice: {
			get: func() string {
				if p.PriceFrom == nil {
					return ""
				}
				return formatFloat(*p.PriceFrom)
			},
			set: func(v string) error {
				if strings.TrimSpace(v) == "" {
					p.PriceFrom = nil
					return nil
				}
				f, err := parseFloat(v)
				if err != nil {
					return err
				}
				p.PriceFrom = &f
				return nil
			},
		},
		FieldPitch:   textBinding(&p.PixelPitch),
		FieldPurpose: listBinding(&p.Purpose),
	}
}

func (d *SolutionDraft) bindings() map[Field]binding {
	s := &d.Item
	return map[Field]binding{
		FieldSlug:     slugBinding(&s.Slug),
		FieldTitle:    textBinding(&s.Name),
		FieldCategory: screenTypeBinding(&s.Type),
		FieldSummary:  textBinding(&s.ShortDescription),
		FieldDetails:  textBinding(&s.FullDescription),
		FieldFeatured: boolBinding(&s.IsFeatured),
		FieldPrice:    floatBinding(&s.PriceFrom),
		FieldPitch:    textBinding(&s.PixelPitch),
		FieldWidth:    floatBinding(&s.Width),
		FieldHeight:   floatBinding(&s.Height),
		FieldArea:     floatBinding(&s.Area),
		FieldIncluded: listBinding(&s.Included),
	}
}

func (d *CaseDraft) bindings() map[Field]binding {
	c := &d.Item
	return map[Field]binding{
		FieldSlug:     slugBinding(&c.Slug),
		FieldTitle:    textBinding(&c.Title),
		FieldCategory: textBinding(&c.Industry),
		FieldSummary:  textBinding(&c.Task),
		FieldDetails:  textBinding(&c.SolutionDesc),
		FieldFeatured: boolBinding(&c.IsFeatured),
		FieldCity:     textBinding(&c.City),
		FieldDuration: intBinding(&c.Duration),
		FieldSpecs:    listBinding(&c.Specs),
		FieldResult:   textBinding(&c.Result),
	}
}

func (d *ProductDraft) Fields() []Field  { return fieldsOf(d) }
func (d *SolutionDraft) Fields() []Field { return fieldsOf(d) }
func (d *CaseDraft) Fields() []Field     { return fieldsOf(d) }

func (d *ProductDraft) Get(f Field) (string, error)  { return get(d, f) }
func (d *SolutionDraft) Get(f Field) (string, error) { return get(d, f) }
func (d *CaseDraft) Get(f Field) (string, error)     { return get(d, f) }

func (d *ProductDraft) Set(f Field, v string) error  { return set(d, f, v) }
func (d *SolutionDraft) Set(f Field, v string) error { return set(d, f, v) }
func (d *CaseDraft) Set(f Field, v string) error     { return set(d, f, v) }

func fieldsOf(d Draft) []Field {
	b := d.bindings()
	fields := make([]Field, 0, len(b))
	for f := range b {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

func get(d Draft, f Field) (string, error) {
	b, ok := d.bindings()[f]
	if !ok {
		return "", fmt.Errorf("%w: %s on %s", ErrFieldNotSupported, f, d.Kind())
	}
	return b.get(), nil
}

func set(d Draft, f Field, v string) error {
	b, ok := d.bindings()[f]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrFieldNotSupported, f, d.Kind())
	}
	if err := b.set(v); err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}
	return nil
}

func textBinding(dst *string) binding {
	return binding{
		get: func() string { return *dst },
		set: func(v string) error { *dst = v; return nil },
	}
}

func slugBinding(dst *string) binding {
	return binding{
		get: func() string { return *dst },
		set: func(v string) error { *dst = NormalizeSlug(v); return nil },
	}
}

func screenTypeBinding(dst *models.ScreenType) binding {
	return binding{
		get: func() string { return string(*dst) },
		set: func(v string) error {
			t := models.ScreenType(strings.TrimSpace(v))
			if !t.Valid() {
				return fmt.Errorf("%w: screen type %q", ErrInvalidValue, v)
			}
			*dst = t
			return nil
		},
	}
}

func boolBinding(dst *bool) binding {
	return binding{
		get: func() string { return strconv.FormatBool(*dst) },
		set: func(v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*dst = b
			return nil
		},
	}
}

func floatBinding(dst *float64) binding {
	return binding{
		get: func() string { return formatFloat(*dst) },
		set: func(v string) error {
			f, err := parseFloat(v)
			if err != nil {
				return err
			}
			*dst = f
			return nil
		},
	}
}

func intBinding(dst *int) binding {
	return binding{
		get: func() string { return strconv.Itoa(*dst) },
		set: func(v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %q is not a whole number", ErrInvalidValue, v)
			}
			*dst = n
			return nil
		},
	}
}

// listBinding reads and writes a comma-separated list.
func listBinding(dst *pq.StringArray) binding {
	return binding{
		get: func() string { return strings.Join(*dst, ", ") },
		set: func(v string) error {
			items := []string{}
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					items = append(items, part)
				}
			}
			*dst = items
			return nil
		},
	}
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
	}
	return f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// firstImage replaces images[0], keeping any further images untouched.
func firstImage(images []string, uri string) []string {
	out := append([]string(nil), images...)
	if len(out) == 0 {
		return []string{uri}
	}
	out[0] = uri
	return out
}

// ComputeArea returns width*height. The editor never applies it on its own;
// Solution area stays whatever the caller sets.
func ComputeArea(width, height float64) float64 {
	return width * height
}

func cloneProduct(p models.Product) models.Product {
	p.Purpose = append([]string(nil), p.Purpose...)
	p.Images = append([]string(nil), p.Images...)
	if p.PriceFrom != nil {
		price := *p.PriceFrom
		p.PriceFrom = &price
	}
	return p
}

func cloneSolution(s models.Solution) models.Solution {
	s.Included = append([]string(nil), s.Included...)
	s.Images = append([]string(nil), s.Images...)
	return s
}

func cloneCase(c models.Case) models.Case {
	c.Specs = append([]string(nil), c.Specs...)
	c.Images = append([]string(nil), c.Images...)
	return c
}
