package model

// Request is the input of a single evaluation
type Request struct {
	Query string `json:"query" yaml:"query"`
	URL   string `json:"url" yaml:"url"`
}

// PageContent is what the content source hands to the signal providers.
// A failed fetch has OK=false, an empty Text and the reason in Error.
type PageContent struct {
	Text  string `json:"-" yaml:"-"`
	OK    bool   `json:"ok" yaml:"ok"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	FinalURL    string `json:"final_url,omitempty" yaml:"final_url,omitempty"`
	StatusCode  int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	TextLength  int    `json:"text_length" yaml:"text_length"`
}

// FetchFailure builds the PageContent of a failed fetch
func FetchFailure(reason string) PageContent {
	return PageContent{OK: false, Error: reason}
}
