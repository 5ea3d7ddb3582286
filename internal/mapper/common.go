package mapper

import (
	"strings"
	"time"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// FallbackCategory is substituted when a legacy record carries a null
// category. Records created before categories became mandatory still render.
var FallbackCategory = domain.Category{Name: "Øvrige", Slug: "ovrige"}

// rawRef is the minimal shape any related document resolves to.
type rawRef struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
}

type rawCategory struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

type rawAuthor struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

type rawImageFormat struct {
	URL    string  `json:"url"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Size   float64 `json:"size"`
}

type rawImageFormats struct {
	Thumbnail *rawImageFormat `json:"thumbnail"`
	Small     *rawImageFormat `json:"small"`
	Medium    *rawImageFormat `json:"medium"`
	Large     *rawImageFormat `json:"large"`
}

type rawImage struct {
	ID         int              `json:"id"`
	DocumentID string           `json:"documentId"`
	Name       string           `json:"name"`
	URL        string           `json:"url" validate:"required"`
	Size       float64          `json:"size"`
	Mime       string           `json:"mime"`
	Formats    *rawImageFormats `json:"formats"`
}

type rawFile struct {
	ID         int     `json:"id"`
	DocumentID string  `json:"documentId"`
	Name       string  `json:"name"`
	URL        string  `json:"url" validate:"required"`
	Size       float64 `json:"size"`
	Ext        string  `json:"ext"`
}

// optString centralizes the store's null→absent normalization for text:
// nil and blank both map to an omitted field.
func optString(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseTime reads the store's RFC3339 timestamps, tolerating the fractional
// variant. Unparseable values map to the zero time; timestamps are
// informational, not load-bearing.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// dateOnly truncates a store timestamp to its YYYY-MM-DD prefix.
func dateOnly(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

func mapCategories(list strapi.RelationList[rawCategory]) []domain.Category {
	if len(list.Values) == 0 {
		return []domain.Category{FallbackCategory}
	}
	categories := make([]domain.Category, 0, len(list.Values))
	for _, c := range list.Values {
		categories = append(categories, domain.Category{
			ID:    c.DocumentID,
			RowID: c.ID,
			Name:  c.Name,
			Slug:  c.Slug,
		})
	}
	return categories
}

func mapAuthor(rel strapi.Relation[rawAuthor]) *domain.Author {
	if rel.Value == nil {
		return nil
	}
	return &domain.Author{
		ID:       rel.Value.DocumentID,
		RowID:    rel.Value.ID,
		Username: rel.Value.Username,
		Email:    rel.Value.Email,
	}
}

func mapImageFormat(f *rawImageFormat) *domain.ImageFormat {
	if f == nil {
		return nil
	}
	return &domain.ImageFormat{
		URL:    f.URL,
		Width:  f.Width,
		Height: f.Height,
		SizeKB: f.Size,
	}
}

func mapImages(list strapi.RelationList[rawImage]) []domain.Image {
	images := make([]domain.Image, 0, len(list.Values))
	for _, img := range list.Values {
		mapped := domain.Image{
			ID:     img.DocumentID,
			RowID:  img.ID,
			Name:   img.Name,
			URL:    img.URL,
			SizeKB: img.Size,
			Mime:   img.Mime,
		}
		if img.Formats != nil {
			mapped.Formats = domain.ImageFormats{
				Thumbnail: mapImageFormat(img.Formats.Thumbnail),
				Small:     mapImageFormat(img.Formats.Small),
				Medium:    mapImageFormat(img.Formats.Medium),
				Large:     mapImageFormat(img.Formats.Large),
			}
		}
		images = append(images, mapped)
	}
	return images
}

func mapFiles(list strapi.RelationList[rawFile]) []domain.File {
	files := make([]domain.File, 0, len(list.Values))
	for _, f := range list.Values {
		files = append(files, domain.File{
			ID:     f.DocumentID,
			RowID:  f.ID,
			Name:   f.Name,
			URL:    f.URL,
			SizeKB: f.Size,
			Ext:    f.Ext,
		})
	}
	return files
}
