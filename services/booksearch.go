// services/booksearch.go - Google Books volume search
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const googleBooksURL = "https://www.googleapis.com/books/v1/volumes"

// BookResult is one search hit, flattened to the fields BookTrack stores.
type BookResult struct {
	GoogleBooksID string   `json:"google_books_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	PageCount     *int     `json:"page_count,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Categories    []string `json:"categories"`
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			PageCount     int      `json:"pageCount"`
			PublishedDate string   `json:"publishedDate"`
			Categories    []string `json:"categories"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// BookSearchService queries the Google Books API.
type BookSearchService struct {
	client *http.Client
}

func NewBookSearchService() *BookSearchService {
	return &BookSearchService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search runs a volume query and flattens the results. An API key is
// optional (GOOGLE_BOOKS_API_KEY); without one Google applies lower
// anonymous quotas.
func (s *BookSearchService) Search(query string, maxResults int) ([]BookResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if apiKey := os.Getenv("GOOGLE_BOOKS_API_KEY"); apiKey != "" {
		params.Set("key", apiKey)
	}

	resp, err := s.client.Get(googleBooksURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned status %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode google books response: %w", err)
	}

	results := make([]BookResult, 0, len(body.Items))
	for _, item := range body.Items {
		info := item.VolumeInfo

		result := BookResult{
			GoogleBooksID: item.ID,
			Title:         info.Title,
			Authors:       info.Authors,
			Description:   info.Description,
			Thumbnail:     info.ImageLinks.Thumbnail,
			PublishedDate: info.PublishedDate,
			Categories:    info.Categories,
		}
		if info.PageCount > 0 {
			pages := info.PageCount
			result.PageCount = &pages
		}
		if result.Authors == nil {
			result.Authors = []string{}
		}
		if result.Categories == nil {
			result.Categories = []string{}
		}

		results = append(results, result)
	}

	return results, nil
}
