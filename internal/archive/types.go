package archive

import (
	"bytes"
	"html"
	"strings"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"
)

const (
	unknownTitle         = "Unknown"
	noDescription        = "No description available."
	defaultDetailsPrefix = "https://archive.org/details/"
)

// Result is a single catalog entry returned by a search.
type Result struct {
	Title      string
	Identifier string
	Year       string // empty when the catalog has no year
	MediaType  string // empty when the catalog has no mediatype
}

// URL returns the public details page for the result.
func (r Result) URL() string {
	return defaultDetailsPrefix + r.Identifier
}

// ItemDetail is the extended metadata shown for one item.
type ItemDetail struct {
	Identifier  string
	Title       string
	Description string
	Year        string
	MediaType   string
}

// URL returns the public details page for the item.
func (d ItemDetail) URL() string {
	return defaultDetailsPrefix + d.Identifier
}

// searchResponse mirrors the advancedsearch.php JSON payload.
type searchResponse struct {
	Response *struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	Identifier flexString `json:"identifier"`
	Title      flexString `json:"title"`
	Year       flexString `json:"year"`
	MediaType  flexString `json:"mediatype"`
}

func (d searchDoc) result() Result {
	title := strings.TrimSpace(string(d.Title))
	if title == "" {
		title = unknownTitle
	}
	return Result{
		Title:      title,
		Identifier: strings.TrimSpace(string(d.Identifier)),
		Year:       strings.TrimSpace(string(d.Year)),
		MediaType:  strings.TrimSpace(string(d.MediaType)),
	}
}

// metadataResponse mirrors /metadata/<identifier>. Unknown identifiers come
// back as an empty object, which leaves Metadata nil.
type metadataResponse struct {
	Metadata *struct {
		Identifier  flexString `json:"identifier"`
		Title       flexString `json:"title"`
		Description flexString `json:"description"`
		Year        flexString `json:"year"`
		Date        flexString `json:"date"`
		MediaType   flexString `json:"mediatype"`
	} `json:"metadata"`
}

// flexString accepts the shapes the archive uses for scalar metadata: a
// string, a number, or an array of either (joined with newlines).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '[':
		var parts []flexString
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if v := strings.TrimSpace(string(p)); v != "" {
				values = append(values, v)
			}
		}
		*f = flexString(strings.Join(values, "\n"))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
	}
	return nil
}

var descriptionPolicy = bluemonday.StrictPolicy()

// plainDescription strips markup from an item description and collapses the
// blank lines left behind.
func plainDescription(raw string) string {
	raw = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n").Replace(raw)
	text := html.UnescapeString(descriptionPolicy.Sanitize(raw))

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
