package models

// Metadata summarizes one scrape run. It is written to metadata.json once and
// never updated afterwards.
type Metadata struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Images      []ImageRecord `json:"images" yaml:"images"`
	SourceURL   string        `json:"source_url" yaml:"source_url"`
}

// ImageRecord is one successfully saved image.
type ImageRecord struct {
	Src string `json:"src" yaml:"src"` // path relative to the working directory, e.g. assets/main/img-01.jpg
	Alt string `json:"alt" yaml:"alt"`

	// Position is the 1-based index of the <img> element on the page. Not serialized.
	Position int `json:"-" yaml:"-"`
}

// ImageFailure records an image that was accepted but could not be saved.
type ImageFailure struct {
	Position int
	URL      string
	Err      error
}
