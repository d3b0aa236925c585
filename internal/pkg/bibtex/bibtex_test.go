package bibtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWellFormedEntry(t *testing.T) {
	raw := `@inproceedings{smith2023deep,
  title     = {{Deep} Learning for {Medical} Imaging},
  author    = {Smith, John and Doe, Jane},
  booktitle = {Proceedings of CVPR},
  year      = {2023},
  url       = {https://example.org/paper.pdf}
}`

	result := Extract(raw)

	assert.Equal(t, StatusParsed, result.Status)
	assert.Equal(t, "Deep Learning for Medical Imaging", result.Title, "braces must be stripped")
	assert.Equal(t, "Smith, John and Doe, Jane", result.Authors)
	assert.Equal(t, "Proceedings of CVPR", result.Venue)
	assert.Equal(t, "https://example.org/paper.pdf", result.URL)
	require.NotNil(t, result.Year)
	assert.Equal(t, 2023, *result.Year)
}

func TestExtractPrefersBooktitleOverJournal(t *testing.T) {
	raw := `@inproceedings{key1,
  title     = {A Title},
  author    = {Someone},
  booktitle = {NeurIPS},
  journal   = {Some Journal},
  year      = {2022}
}`

	result := Extract(raw)
	assert.Equal(t, "NeurIPS", result.Venue)
}

func TestExtractFallsBackToJournal(t *testing.T) {
	raw := `@article{key2,
  title   = {Another Title},
  author  = {Someone Else},
  journal = {Nature Machine Intelligence},
  year    = {2021}
}`

	result := Extract(raw)
	assert.Equal(t, "Nature Machine Intelligence", result.Venue)
}

func TestExtractNonNumericYearIsNil(t *testing.T) {
	raw := `@article{key3,
  title  = {Title Only},
  author = {An Author},
  year   = {in press}
}`

	result := Extract(raw)
	assert.Equal(t, StatusPartial, result.Status)
	assert.Nil(t, result.Year)
}

func TestExtractMissingFieldsIsPartial(t *testing.T) {
	raw := `@misc{key4,
  title = {Lonely Title}
}`

	result := Extract(raw)
	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, "Lonely Title", result.Title)
	assert.Empty(t, result.Authors)
	assert.Nil(t, result.Year)
}

func TestExtractMalformedTextIsUnparsed(t *testing.T) {
	for _, raw := range []string{
		"",
		"this is not bibtex at all",
		"@article{broken, title = {unterminated",
	} {
		result := Extract(raw)
		assert.Equal(t, StatusUnparsed, result.Status, "input: %q", raw)
		assert.Empty(t, result.Title)
	}
}
