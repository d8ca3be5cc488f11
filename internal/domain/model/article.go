// Пакет model — доменные модели сайта посольства.
// Статьи (новости) приходят из внешнего REST API в формате Spring Page.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ArticleImage — изображение, прикреплённое к статье.
type ArticleImage struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
}

// Article — новостная статья из внешнего API.
type Article struct {
	// ID — уникальный идентификатор статьи
	ID int64 `json:"id"`
	// Title — заголовок
	Title string `json:"title"`
	// Excerpt — краткое описание
	Excerpt string `json:"excerpt"`
	// Content — тело статьи в HTML
	Content string `json:"content"`
	// Category — категория (произвольная строка)
	Category string `json:"category"`
	// Author — автор
	Author string `json:"author"`
	// ReadTime — время чтения ("5 min read"), может быть пустым
	ReadTime string `json:"readTime"`
	// CreatedAt — дата создания
	CreatedAt Timestamp `json:"createdAt"`
	// UpdatedAt — дата последнего изменения
	UpdatedAt Timestamp `json:"updatedAt"`
	// Images — прикреплённые изображения (первое — основное)
	Images []ArticleImage `json:"images"`
}

// PageSort — блок сортировки Spring Page.
type PageSort struct {
	Empty    bool `json:"empty"`
	Unsorted bool `json:"unsorted"`
	Sorted   bool `json:"sorted"`
}

// Pageable — параметры запрошенной страницы.
type Pageable struct {
	Offset     int64    `json:"offset"`
	Paged      bool     `json:"paged"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	Unpaged    bool     `json:"unpaged"`
	Sort       PageSort `json:"sort"`
}

// ArticlePage — постраничный ответ GET /article/all.
// Number — номер страницы с нуля (как в API).
type ArticlePage struct {
	Content          []Article `json:"content"`
	TotalPages       int       `json:"totalPages"`
	TotalElements    int64     `json:"totalElements"`
	Size             int       `json:"size"`
	Number           int       `json:"number"`
	NumberOfElements int       `json:"numberOfElements"`
	First            bool      `json:"first"`
	Last             bool      `json:"last"`
	Empty            bool      `json:"empty"`
	Pageable         Pageable  `json:"pageable"`
	Sort             PageSort  `json:"sort"`
}

// EmptyArticlePage возвращает пустую страницу (деградация при ошибке API).
func EmptyArticlePage(size int) *ArticlePage {
	return &ArticlePage{
		Content: []Article{},
		Size:    size,
		First:   true,
		Last:    true,
		Empty:   true,
	}
}

// NewsItem — статья, подготовленная для отображения на страницах.
type NewsItem struct {
	ID       string
	Title    string
	Excerpt  string
	Content  string
	Image    string
	Date     time.Time
	Category string
	Author   string
	ReadTime string
}

// timestampLayouts — форматы дат, которые встречаются в ответах API.
// Spring отдаёт LocalDateTime без часового пояса, такие значения считаются UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp — время из API с поддержкой нескольких форматов.
// null и пустая строка дают нулевое время.
type Timestamp struct {
	time.Time
}

// NewTimestamp оборачивает time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON разбирает строку даты в одном из timestampLayouts.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: ожидалась строка: %w", err)
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("timestamp: неизвестный формат %q", s)
}

// MarshalJSON сериализует время в RFC 3339 (нулевое время — null).
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}
