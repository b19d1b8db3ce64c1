// Package jobs defines job postings and the client for the jobs API.
package jobs

import (
	"encoding/json"
	"fmt"
)

// Posting is a single job posting. Identity is ID.
type Posting struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	// Place is empty when the API did not report one.
	Place string `json:"place,omitempty"`
}

// HasPlace reports whether the posting carries a location.
func (p Posting) HasPlace() bool {
	return p.Place != ""
}

// pageResponse mirrors the top-level jobs API response.
type pageResponse struct {
	Results []wirePosting `json:"results"`
}

// wirePosting mirrors one entry of results. Entries without an id are ads or
// placeholders and are never turned into Postings.
type wirePosting struct {
	ID             *int64          `json:"id"`
	Title          string          `json:"title"`
	PrimaryDetails *primaryDetails `json:"primary_details"`
}

type primaryDetails struct {
	Place string `json:"Place"`
}

// DecodePage parses a jobs API body and returns the postings that have an id,
// in response order. Repeated ids within one page keep their first entry.
func DecodePage(body []byte) ([]Posting, error) {
	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding jobs page: %w", err)
	}
	return filterPostings(resp.Results), nil
}

func filterPostings(entries []wirePosting) []Posting {
	postings := make([]Posting, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == nil {
			continue
		}
		if _, dup := seen[*e.ID]; dup {
			continue
		}
		seen[*e.ID] = struct{}{}

		p := Posting{ID: *e.ID, Title: e.Title}
		if e.PrimaryDetails != nil {
			p.Place = e.PrimaryDetails.Place
		}
		postings = append(postings, p)
	}
	return postings
}
