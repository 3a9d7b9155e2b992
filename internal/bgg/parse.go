package bgg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Link types used to split a thing's <link> elements.
const (
	LinkCategory = "boardgamecategory"
	LinkMechanic = "boardgamemechanic"
	LinkFamily   = "boardgamefamily"
)

const unknownName = "Unknown"

// valueAttr is the <foo value="..."/> shape BGG uses for scalar fields.
type valueAttr struct {
	Value string `xml:"value,attr"`
}

type xmlName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type xmlLink struct {
	Type  string `xml:"type,attr"`
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type searchItem struct {
	ID            string     `xml:"id,attr"`
	Type          string     `xml:"type,attr"`
	Names         []xmlName  `xml:"name"`
	YearPublished *valueAttr `xml:"yearpublished"`
}

type searchResponse struct {
	XMLName xml.Name     `xml:"items"`
	Items   []searchItem `xml:"item"`
}

type thingItem struct {
	ID            string     `xml:"id,attr"`
	Type          string     `xml:"type,attr"`
	Thumbnail     *string    `xml:"thumbnail"`
	Image         *string    `xml:"image"`
	Names         []xmlName  `xml:"name"`
	Description   *string    `xml:"description"`
	YearPublished *valueAttr `xml:"yearpublished"`
	MinPlayers    *valueAttr `xml:"minplayers"`
	MaxPlayers    *valueAttr `xml:"maxplayers"`
	PlayingTime   *valueAttr `xml:"playingtime"`
	MinPlayTime   *valueAttr `xml:"minplaytime"`
	MaxPlayTime   *valueAttr `xml:"maxplaytime"`
	MinAge        *valueAttr `xml:"minage"`
	Links         []xmlLink  `xml:"link"`
	AverageWeight *valueAttr `xml:"statistics>ratings>averageweight"`
	Average       *valueAttr `xml:"statistics>ratings>average"`
}

type thingResponse struct {
	XMLName xml.Name    `xml:"items"`
	Items   []thingItem `xml:"item"`
}

// ParseSearch decodes a /search response. Items keep document order; a
// document without items yields an empty, non-nil slice.
func ParseSearch(r io.Reader) ([]SearchResult, error) {
	var resp searchResponse
	if err := xml.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, SearchResult{
			ID:            item.ID,
			Name:          primaryName(item.Names),
			YearPublished: parseInt(item.YearPublished),
		})
	}
	return results, nil
}

// ParseThing decodes a /thing response and maps its first item.
// It returns ErrNotFound when the document holds no item.
func ParseThing(r io.Reader) (*GameDetails, error) {
	var resp thingResponse
	if err := xml.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode thing response: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}
	return resp.Items[0].details(), nil
}

func (item thingItem) details() *GameDetails {
	return &GameDetails{
		ID:             item.ID,
		Name:           primaryName(item.Names),
		YearPublished:  parseInt(item.YearPublished),
		MinPlayers:     parseInt(item.MinPlayers),
		MaxPlayers:     parseInt(item.MaxPlayers),
		PlayingTime:    parseInt(item.PlayingTime),
		MinPlayingTime: parseInt(item.MinPlayTime),
		MaxPlayingTime: parseInt(item.MaxPlayTime),
		Age:            parseInt(item.MinAge),
		Description:    nonEmpty(item.Description),
		Image:          nonEmpty(item.Image),
		Thumbnail:      nonEmpty(item.Thumbnail),
		Complexity:     parseFloat(item.AverageWeight),
		Rating:         parseFloat(item.Average),
		Categories:     linkValues(item.Links, LinkCategory),
		Mechanics:      linkValues(item.Links, LinkMechanic),
		Families:       linkValues(item.Links, LinkFamily),
	}
}

// primaryName prefers the name typed "primary", then the first name.
func primaryName(names []xmlName) string {
	for _, n := range names {
		if n.Type == "primary" && n.Value != "" {
			return n.Value
		}
	}
	if len(names) > 0 && names[0].Value != "" {
		return names[0].Value
	}
	return unknownName
}

func linkValues(links []xmlLink, linkType string) []string {
	values := []string{}
	for _, l := range links {
		if l.Type == linkType {
			values = append(values, l.Value)
		}
	}
	return values
}

func parseInt(v *valueAttr) *int {
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(v *valueAttr) *float64 {
	if v == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
	if err != nil {
		return nil
	}
	return &f
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
