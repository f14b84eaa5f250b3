package models

import "github.com/lib/pq"

// ScreenType enumerates the supported display placements.
type ScreenType string

const (
	ScreenIndoor  ScreenType = "indoor"
	ScreenOutdoor ScreenType = "outdoor"
)

// Valid reports whether t is one of the known screen types.
func (t ScreenType) Valid() bool {
	return t == ScreenIndoor || t == ScreenOutdoor
}

// Content is implemented by the pointer types of the staff-managed entities.
type Content interface {
	GetID() int64
	SetID(id int64)
	GetSlug() string
}

// Product represents an LED module or cabinet in the public catalog.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID                 int64          `db:"id" json:"id,omitempty"`
	Slug               string         `db:"slug" json:"slug"`
	Name               string         `db:"name" json:"name"`
	Type               ScreenType     `db:"type" json:"type"`
	Purpose            pq.StringArray `db:"purpose" json:"purpose"`
	PixelPitch         string         `db:"pixel_pitch" json:"pixelPitch"`
	Brightness         int            `db:"brightness" json:"brightness"`
	RefreshRate        int            `db:"refresh_rate" json:"refreshRate"`
	IPRating           string         `db:"ip_rating" json:"ipRating"`
	ViewingDistanceMin int            `db:"viewing_distance_min" json:"viewingDistanceMin"`
	ViewingDistanceMax int            `db:"viewing_distance_max" json:"viewingDistanceMax"`
	PriceFrom          *float64       `db:"price_from" json:"priceFrom,omitempty"`
	ShortDescription   string         `db:"short_description" json:"shortDescription"`
	FullDescription    string         `db:"full_description" json:"fullDescription"`
	Images             pq.StringArray `db:"images" json:"images"`
	IsFeatured         bool           `db:"is_featured" json:"isFeatured"`
	SortOrder          int            `db:"sort_order" json:"sortOrder"`
	Warranty           int            `db:"warranty" json:"warranty"`
	LeadTime           int            `db:"lead_time" json:"leadTime"`
}

func (p *Product) GetID() int64    { return p.ID }
func (p *Product) SetID(id int64)  { p.ID = id }
func (p *Product) GetSlug() string { return p.Slug }

// HasPrice reports whether the product carries a listed starting price.
// A zero price is shown as "on request" and treated as unlisted.
func (p *Product) HasPrice() bool {
	return p.PriceFrom != nil && *p.PriceFrom > 0
}
