package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrPageNotFound    = errors.New("review page not found")
	ErrInvalidCategory = errors.New("category must be either \"product\" or \"service\"")
)

const (
	CategoryProduct = "product"
	CategoryService = "service"
)

// ReviewPage is a business-created record representing one product or
// service open for reviews. Rows are immutable after creation.
type ReviewPage struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Category    string     `json:"category"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Images      StringList `json:"images"`
	URL         *string    `json:"url"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CreateReviewPageRequest struct {
	UserID      string   `json:"userId"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         *string  `json:"url"`
	Images      []string `json:"images"`
}

// ReviewPageResponse is the public shape returned to anyone holding the
// page id. The owning userId is deliberately absent.
type ReviewPageResponse struct {
	Category    string     `json:"category"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Images      StringList `json:"images"`
	URL         *string    `json:"url"`
}

// StringList stores an ordered list of image URLs as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}
