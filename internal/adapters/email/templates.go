package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

//go:embed templates/*.html
var templateFS embed.FS

var resultsTemplate = template.Must(template.ParseFS(templateFS, "templates/results.html"))

type resultsEmailData struct {
	Label     string
	Restrooms []resultRow
}

type resultRow struct {
	Name          string
	Street        string
	City          string
	State         string
	DirectionsURL string
	Notes         string
	Rating        string
	Distance      string
	Unisex        bool
	Accessible    bool
	ChangingTable bool
}

// RenderResults renders the HTML body of a results email.
func RenderResults(label domain.SearchLabel, restrooms []domain.RestroomRecord) (string, error) {
	data := resultsEmailData{Label: label.Visual()}
	for _, r := range restrooms {
		row := resultRow{
			Name:          r.Name,
			Street:        r.Street,
			City:          r.City,
			State:         r.State,
			Notes:         r.Directions,
			Rating:        usecases.RatingText(r),
			Unisex:        r.Unisex,
			Accessible:    r.Accessible,
			ChangingTable: r.ChangingTable,
		}
		if r.HasCoordinates() {
			row.DirectionsURL = usecases.GoogleMapsDirectionsURL(r.Latitude, r.Longitude)
		}
		if r.Distance != nil {
			row.Distance = usecases.FormatMiles(*r.Distance)
		}
		data.Restrooms = append(data.Restrooms, row)
	}

	var buf bytes.Buffer
	if err := resultsTemplate.ExecuteTemplate(&buf, "results", data); err != nil {
		return "", fmt.Errorf("execute results template: %w", err)
	}
	return buf.String(), nil
}
