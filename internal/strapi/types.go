package strapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Pagination mirrors the store's meta.pagination block.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Meta is the envelope metadata on collection responses.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// APIError is the error block the store returns on failed requests.
type APIError struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// envelope is the store's uniform response shape: either data (+meta) or error.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *Meta           `json:"meta,omitempty"`
	Error *APIError       `json:"error,omitempty"`
}

// DocumentList is a page of raw documents plus the store's pagination info.
type DocumentList struct {
	Documents  []json.RawMessage
	Pagination *Pagination
}

// DefaultPageSize matches the store's own default page size.
const DefaultPageSize = 25

// AllPageSize caps "fetch everything" queries. The store has no true
// unbounded fetch; a high fixed limit bounds worst-case response size.
const AllPageSize = 1000

// Query carries list options: population, sorting, an equality filter map,
// and pagination. The zero value requests the store's defaults.
type Query struct {
	// Populate names relations to include, e.g. "images", "comments.author".
	Populate []string
	// Sort entries use the store syntax, e.g. "matchDate:desc".
	Sort []string
	// Filters maps dotted field paths to required values, e.g.
	// "author.documentId" -> "abc123". Only equality is expressible; that is
	// all the callers need.
	Filters  map[string]string
	Page     int
	PageSize int
}

// Encode renders the query as store query parameters.
func (q Query) Encode() string {
	values := url.Values{}
	for i, p := range q.Populate {
		values.Set(fmt.Sprintf("populate[%d]", i), p)
	}
	for i, s := range q.Sort {
		values.Set(fmt.Sprintf("sort[%d]", i), s)
	}
	for path, value := range q.Filters {
		key := "filters"
		for _, part := range strings.Split(path, ".") {
			key += "[" + part + "]"
		}
		values.Set(key+"[$eq]", value)
	}
	if q.Page > 0 {
		values.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}
	return values.Encode()
}

// RelationConnect adds related documents to a many-relation on create.
type RelationConnect struct {
	Connect []string `json:"connect"`
}

// RelationSet replaces a many-relation's full membership on update.
type RelationSet struct {
	Set []string `json:"set"`
}

// UploadFile is one file queued for the store's upload endpoint.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadRequest links uploaded files to an owning record in one call. Ref is
// the owning collection's content-type uid, RefID the owner's numeric row id,
// and Field the attribute receiving the assets.
type UploadRequest struct {
	Ref   string
	RefID int
	Field string
	Files []UploadFile
}

// UploadedFile is the store's record of a stored asset.
type UploadedFile struct {
	ID         int     `json:"id"`
	DocumentID string  `json:"documentId"`
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	SizeKB     float64 `json:"size"`
	Mime       string  `json:"mime"`
	Ext        string  `json:"ext"`
}

// AuthSession is the store's reply to a successful credential exchange.
type AuthSession struct {
	Token string
	User  json.RawMessage
}
