package render

import (
	"time"

	"alertdash/internal/models"
	"alertdash/internal/view"
)

// Document is the machine readable form of a computed view. Flat views always
// carry an alerts array, empty when nothing matched.
type Document struct {
	Mode    view.Mode       `json:"mode"`
	Summary string          `json:"summary"`
	Total   int             `json:"total"`
	Alerts  []*models.Alert `json:"alerts"`
	Groups  []GroupDocument `json:"groups,omitempty"`
}

// GroupDocument is one alert summary group of a Document.
type GroupDocument struct {
	SummaryID     int64           `json:"alertSummaryId"`
	Count         int             `json:"count"`
	MostRecent    *time.Time      `json:"mostRecent,omitempty"`
	DetectionDate *time.Time      `json:"detectionDate,omitempty"`
	Alerts        []*models.Alert `json:"alerts"`
}

// NewDocument converts res for JSON output.
func NewDocument(res view.Result) Document {
	doc := Document{Mode: res.Mode, Summary: Summary(res), Total: res.Total()}
	if res.Mode != view.ModeGrouped {
		doc.Alerts = res.Alerts
		if doc.Alerts == nil {
			doc.Alerts = []*models.Alert{}
		}
		return doc
	}

	doc.Groups = make([]GroupDocument, 0, len(res.Groups))
	for _, g := range res.Groups {
		gd := GroupDocument{SummaryID: g.SummaryID, Count: g.Count, DetectionDate: g.DetectionDate, Alerts: g.Alerts}
		if !g.MostRecent.IsZero() {
			mostRecent := g.MostRecent
			gd.MostRecent = &mostRecent
		}
		doc.Groups = append(doc.Groups, gd)
	}
	return doc
}
