package pagesift

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Field names used in the exported JSON form of a Record.
const (
	FieldTitle         = "title"
	FieldBrand         = "brand"
	FieldPrice         = "price"
	FieldQuantity      = "quantity"
	FieldDescription   = "description"
	FieldAuthor        = "author"
	FieldPublishedDate = "published_date"
	FieldContent       = "content"
	FieldSummary       = "summary"
	FieldImageURL      = "image_url"
	FieldURL           = "url"
	FieldContentBlocks = "content_blocks"
	FieldImages        = "images"
)

// Fields returns the field names carried by records of the given category.
func Fields(c Category) []string {
	switch c {
	case CategoryProduct:
		return []string{FieldTitle, FieldBrand, FieldPrice, FieldQuantity, FieldDescription, FieldImageURL, FieldURL}
	case CategoryArticle:
		return []string{FieldTitle, FieldAuthor, FieldPublishedDate, FieldContent, FieldSummary, FieldImageURL, FieldURL}
	case CategoryGeneric:
		return []string{FieldTitle, FieldContentBlocks, FieldImages}
	}
	return nil
}

// Record is one structured item extracted from a page.
//
// String fields are trimmed and whitespace-collapsed; ImageURL, URL and
// Images hold absolute URLs. An empty string means the field was not found.
// Only the fields returned by Fields(Category) are meaningful.
type Record struct {
	Category Category

	Title         string
	Brand         string
	Price         string
	Quantity      string
	Description   string
	Author        string
	PublishedDate string
	Content       string
	Summary       string
	ImageURL      string
	URL           string

	ContentBlocks []string
	Images        []string
}

// Get returns the string value of a named field. List fields are joined
// with newlines.
func (r *Record) Get(field string) string {
	switch field {
	case FieldTitle:
		return r.Title
	case FieldBrand:
		return r.Brand
	case FieldPrice:
		return r.Price
	case FieldQuantity:
		return r.Quantity
	case FieldDescription:
		return r.Description
	case FieldAuthor:
		return r.Author
	case FieldPublishedDate:
		return r.PublishedDate
	case FieldContent:
		return r.Content
	case FieldSummary:
		return r.Summary
	case FieldImageURL:
		return r.ImageURL
	case FieldURL:
		return r.URL
	case FieldContentBlocks:
		return strings.Join(r.ContentBlocks, "\n")
	case FieldImages:
		return strings.Join(r.Images, "\n")
	}
	return ""
}

// IsEmpty reports whether every field beyond the category tag is empty.
func (r *Record) IsEmpty() bool {
	for _, f := range allFields {
		if r.Get(f) != "" {
			return false
		}
	}
	return true
}

var allFields = []string{
	FieldTitle, FieldBrand, FieldPrice, FieldQuantity, FieldDescription,
	FieldAuthor, FieldPublishedDate, FieldContent, FieldSummary,
	FieldImageURL, FieldURL, FieldContentBlocks, FieldImages,
}

// Fingerprint returns a stable hash of the record's category fields.
// Consumers can use it to implement their own de-duplication policy.
func (r *Record) Fingerprint() string {
	h := xxhash.New()
	_, _ = h.WriteString(string(r.Category))
	for _, f := range Fields(r.Category) {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(r.Get(f))
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

type recordJSON struct {
	Category      Category `json:"category"`
	Title         string   `json:"title,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Price         string   `json:"price,omitempty"`
	Quantity      string   `json:"quantity,omitempty"`
	Description   string   `json:"description,omitempty"`
	Author        string   `json:"author,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Content       string   `json:"content,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	URL           string   `json:"url,omitempty"`
	ContentBlocks []string `json:"content_blocks,omitempty"`
	Images        []string `json:"images,omitempty"`
}

// MarshalJSON emits the category tag and the non-empty fields that belong
// to the record's category.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Category: r.Category, Title: r.Title}
	switch r.Category {
	case CategoryProduct:
		out.Brand = r.Brand
		out.Price = r.Price
		out.Quantity = r.Quantity
		out.Description = r.Description
		out.ImageURL = r.ImageURL
		out.URL = r.URL
	case CategoryArticle:
		out.Author = r.Author
		out.PublishedDate = r.PublishedDate
		out.Content = r.Content
		out.Summary = r.Summary
		out.ImageURL = r.ImageURL
		out.URL = r.URL
	case CategoryGeneric:
		out.ContentBlocks = r.ContentBlocks
		out.Images = r.Images
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a record from its exported form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{
		Category:      in.Category,
		Title:         in.Title,
		Brand:         in.Brand,
		Price:         in.Price,
		Quantity:      in.Quantity,
		Description:   in.Description,
		Author:        in.Author,
		PublishedDate: in.PublishedDate,
		Content:       in.Content,
		Summary:       in.Summary,
		ImageURL:      in.ImageURL,
		URL:           in.URL,
		ContentBlocks: in.ContentBlocks,
		Images:        in.Images,
	}
	return nil
}

// Assemble filters raw extractor output into the final record sequence.
// Records with no fields are dropped, and product records must carry a
// title or a price. Input order is preserved and nothing is de-duplicated.
func Assemble(records []*Record, category Category) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r == nil || r.IsEmpty() {
			continue
		}
		if category == CategoryProduct && r.Title == "" && r.Price == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
