package models

import "github.com/lib/pq"

// Case is a completed installation shown in the portfolio.
type Case struct {
	ID            int64          `db:"id" json:"id,omitempty"`
	Slug          string         `db:"slug" json:"slug"`
	Title         string         `db:"title" json:"title"`
	City          string         `db:"city" json:"city"`
	Industry      string         `db:"industry" json:"industry"`
	Task          string         `db:"task" json:"task"`
	SolutionDesc  string         `db:"solution" json:"solution"`
	Specs         pq.StringArray `db:"specs" json:"specs"`
	Duration      int            `db:"duration" json:"duration"`
	Result        string         `db:"result" json:"result"`
	Images        pq.StringArray `db:"images" json:"images"`
	VideoURL      *string        `db:"video_url" json:"videoUrl,omitempty"`
	Testimonial   *string        `db:"testimonial" json:"testimonial,omitempty"`
	IsFeatured    bool           `db:"is_featured" json:"isFeatured"`
	FeaturedOrder int            `db:"featured_order" json:"featuredOrder"`
}

func (c *Case) GetID() int64    { return c.ID }
func (c *Case) SetID(id int64)  { c.ID = id }
func (c *Case) GetSlug() string { return c.Slug }
