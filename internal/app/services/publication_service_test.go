package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/pkg/bibtex"
)

func TestApplyBibTeXOverwritesFields(t *testing.T) {
	pub := &models.Publication{
		Title:   "Old title",
		Authors: "Old authors",
		BibTeX: `@inproceedings{smith2023,
  title     = {Deep {Learning} for Things},
  author    = {Smith, John and Doe, Jane},
  booktitle = {Proceedings of NeurIPS},
  year      = {2023},
  url       = {https://example.org/paper.pdf},
}`,
	}

	status := ApplyBibTeX(pub)

	assert.Equal(t, bibtex.StatusParsed, status)
	assert.Equal(t, "Deep Learning for Things", pub.Title)
	assert.Equal(t, "Smith, John and Doe, Jane", pub.Authors)
	assert.Equal(t, "Proceedings of NeurIPS", pub.Venue)
	require.NotNil(t, pub.Year)
	assert.Equal(t, 2023, *pub.Year)
	assert.Equal(t, "https://example.org/paper.pdf", pub.URL)
}

func TestApplyBibTeXPartialKeepsMissingFields(t *testing.T) {
	year := 2020
	pub := &models.Publication{
		Title:   "Manually entered title",
		Authors: "Manually entered authors",
		Year:    &year,
		BibTeX: `@article{anon2021,
  title = {A Parsed Title},
}`,
	}

	status := ApplyBibTeX(pub)

	assert.Equal(t, bibtex.StatusPartial, status)
	assert.Equal(t, "A Parsed Title", pub.Title)
	// Absent fields keep their stored values
	assert.Equal(t, "Manually entered authors", pub.Authors)
	require.NotNil(t, pub.Year)
	assert.Equal(t, 2020, *pub.Year)
}

func TestApplyBibTeXUnparsedLeavesRecordAlone(t *testing.T) {
	pub := &models.Publication{
		Title:   "Kept title",
		Authors: "Kept authors",
		BibTeX:  "this is not bibtex at all {{{",
	}

	status := ApplyBibTeX(pub)

	assert.Equal(t, bibtex.StatusUnparsed, status)
	assert.Equal(t, "Kept title", pub.Title)
	assert.Equal(t, "Kept authors", pub.Authors)
}
