package lead

import (
	"fmt"
	"io"
	"time"

	"github.com/Almas2004/led/internal/models"
	"github.com/gocarina/gocsv"
)

type csvRow struct {
	ID          int64  `csv:"id"`
	CreatedAt   string `csv:"created_at"`
	Status      string `csv:"status"`
	Name        string `csv:"name"`
	Phone       string `csv:"phone"`
	City        string `csv:"city"`
	Source      string `csv:"source"`
	PageURL     string `csv:"page_url"`
	ProductID   string `csv:"product_id"`
	SolutionID  string `csv:"solution_id"`
	Message     string `csv:"message"`
	ManagerNote string `csv:"manager_note"`
}

// ExportCSV writes leads as CSV with a header row, in the given order.
func ExportCSV(w io.Writer, leads []models.Lead) error {
	rows := make([]csvRow, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, csvRow{
			ID:          l.ID,
			CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
			Status:      Label(l.Status),
			Name:        l.Name,
			Phone:       l.Phone,
			City:        l.City,
			Source:      l.Source,
			PageURL:     l.PageURL,
			ProductID:   deref(l.ProductID),
			SolutionID:  deref(l.SolutionID),
			Message:     l.Message,
			ManagerNote: deref(l.ManagerNote),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write leads csv: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
