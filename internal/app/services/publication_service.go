package services

import (
	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/pkg/bibtex"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// ApplyBibTeX re-derives a publication's display fields from its BibTeX
// source. Fields the citation doesn't provide keep their current values,
// and when the citation can't be parsed at all the record is left untouched,
// so a bad paste never destroys manually entered data.
func ApplyBibTeX(p *models.Publication) bibtex.Status {
	result := bibtex.Extract(p.BibTeX)
	if result.Status == bibtex.StatusUnparsed {
		logger.Warn().Int64("publication_id", p.ID).Msg("BibTeX could not be parsed, keeping stored fields")
		return result.Status
	}

	if result.Title != "" {
		p.Title = result.Title
	}
	if result.Authors != "" {
		p.Authors = result.Authors
	}
	if result.Venue != "" {
		p.Venue = result.Venue
	}
	if result.Year != nil {
		p.Year = result.Year
	}
	if result.URL != "" {
		p.URL = result.URL
	}

	logger.Debug().
		Int64("publication_id", p.ID).
		Str("status", result.Status.String()).
		Msg("Applied BibTeX fields")
	return result.Status
}
