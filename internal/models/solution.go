package models

import "github.com/lib/pq"

// Solution is a turnkey screen package: a sized display plus bundled services.
// Area is expected to equal Width*Height but that is left to the editor.
type Solution struct {
	ID               int64          `db:"id" json:"id,omitempty"`
	Slug             string         `db:"slug" json:"slug"`
	Name             string         `db:"name" json:"name"`
	Type             ScreenType     `db:"type" json:"type"`
	Width            float64        `db:"width" json:"width"`
	Height           float64        `db:"height" json:"height"`
	Area             float64        `db:"area" json:"area"`
	PixelPitch       string         `db:"pixel_pitch" json:"pixelPitch"`
	Brightness       int            `db:"brightness" json:"brightness"`
	Included         pq.StringArray `db:"included" json:"included"`
	PriceFrom        float64        `db:"price_from" json:"priceFrom"`
	ShortDescription string         `db:"short_description" json:"shortDescription"`
	FullDescription  string         `db:"full_description" json:"fullDescription"`
	Warranty         int            `db:"warranty" json:"warranty"`
	LeadTime         int            `db:"lead_time" json:"leadTime"`
	Images           pq.StringArray `db:"images" json:"images"`
	IsFeatured       bool           `db:"is_featured" json:"isFeatured"`
	FeaturedOrder    int            `db:"featured_order" json:"featuredOrder"`
}

func (s *Solution) GetID() int64    { return s.ID }
func (s *Solution) SetID(id int64)  { s.ID = id }
func (s *Solution) GetSlug() string { return s.Slug }
