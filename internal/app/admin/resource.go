// Package admin implements the management backend: every content type is
// described by a Resource and served by one generic set of handlers.
package admin

import (
	"context"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// Column describes one column of a resource's list view
type Column struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Filter describes a list-view filter and the values it accepts
type Filter struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Choices []string `json:"choices"`
}

// Meta describes how a resource behaves in the admin backend
type Meta struct {
	// Name is the URL slug, e.g. "students"
	Name  string `json:"name"`
	Label string `json:"label"`

	Columns    []Column `json:"columns"`
	Searchable bool     `json:"searchable"`
	Filters    []Filter `json:"filters,omitempty"`

	// Choices restricts select fields on the form to fixed values
	Choices map[string][]string `json:"choices,omitempty"`

	// UploadFields lists the form fields that accept an image file
	UploadFields []string `json:"uploadFields,omitempty"`

	DisableCreate bool `json:"disableCreate,omitempty"`
	DisableDelete bool `json:"disableDelete,omitempty"`
}

// ListQuery carries the parsed query string of a list view
type ListQuery struct {
	Search  string
	Filters map[string]string
}

// Filter returns a named filter value, or "" when it wasn't supplied
func (q ListQuery) Filter(name string) string {
	return q.Filters[name]
}

// Row is one list-view row: the record id plus the column cells
type Row struct {
	ID    int64                  `json:"id"`
	Cells map[string]interface{} `json:"cells"`
}

// Form is a submitted create/update form. Forms are full submissions: every
// scalar field is taken from the form, and checkboxes that were left
// unchecked simply aren't present.
type Form struct {
	Values url.Values
	Files  map[string]*multipart.FileHeader
}

// Value returns the trimmed form value for a field
func (f Form) Value(name string) string {
	return strings.TrimSpace(f.Values.Get(name))
}

// Bool reads a checkbox field
func (f Form) Bool(name string) bool {
	switch strings.ToLower(f.Value(name)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// IntPtr reads an optional integer field, nil when empty
func (f Form) IntPtr(name string) (*int, error) {
	raw := f.Value(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// Int reads an integer field, zero when empty
func (f Form) Int(name string) (int, error) {
	value, err := f.IntPtr(name)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}
	return *value, nil
}

// Int64Slice reads a repeated id field (e.g. member checkboxes)
func (f Form) Int64Slice(name string) ([]int64, error) {
	raw := f.Values[name]
	ids := make([]int64, 0, len(raw))
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// File returns the uploaded file for a field, if one was submitted
func (f Form) File(name string) (*multipart.FileHeader, bool) {
	file, ok := f.Files[name]
	if !ok || file == nil {
		return nil, false
	}
	return file, true
}

// Resource is one manageable entity type. Implementations own the mapping
// between forms and their model, including image uploads.
type Resource interface {
	Meta() Meta
	List(ctx context.Context, query ListQuery) ([]Row, error)
	Get(ctx context.Context, id int64) (interface{}, error)
	Create(ctx context.Context, form Form) (int64, error)
	Update(ctx context.Context, id int64, form Form) error
	Delete(ctx context.Context, id int64) error
}
