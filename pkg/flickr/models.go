package flickr

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// envelope is the part every REST response shares
type envelope struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// flexString accepts a JSON string or number. Flickr is not consistent about
// which one it sends for ids and counts.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt is a count that may arrive quoted
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// Photo is one search result. URLL is empty when Flickr has no large size.
type Photo struct {
	ID      string
	Owner   string
	Title   string
	URLL    string
	License string
}

func (p *Photo) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      flexString `json:"id"`
		Owner   string     `json:"owner"`
		Title   flexString `json:"title"`
		URLL    string     `json:"url_l"`
		License flexString `json:"license"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Photo{
		ID:      string(raw.ID),
		Owner:   raw.Owner,
		Title:   string(raw.Title),
		URLL:    raw.URLL,
		License: string(raw.License),
	}
	return nil
}

// PhotosPage is a single page of search results
type PhotosPage struct {
	Page    int
	Pages   int
	PerPage int
	Total   int
	Photos  []Photo
}

type searchResponse struct {
	Photos struct {
		Page    flexInt `json:"page"`
		Pages   flexInt `json:"pages"`
		PerPage flexInt `json:"perpage"`
		Total   flexInt `json:"total"`
		Photo   []Photo `json:"photo"`
	} `json:"photos"`
}

// License is an entry of the license list
type License struct {
	ID   string
	Name string
	URL  string
}

type licensesResponse struct {
	Licenses struct {
		License []struct {
			ID   flexString `json:"id"`
			Name string     `json:"name"`
			URL  string     `json:"url"`
		} `json:"license"`
	} `json:"licenses"`
}

type lookupGroupResponse struct {
	Group struct {
		ID        string `json:"id"`
		GroupName struct {
			Content string `json:"_content"`
		} `json:"groupname"`
	} `json:"group"`
}
