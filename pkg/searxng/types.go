package searxng

// apiResponse covers the part of the SearXNG JSON response we consume.
// Additional fields (answers, infoboxes, suggestions) are ignored.
type apiResponse struct {
	Query           string      `json:"query"`
	NumberOfResults int         `json:"number_of_results"`
	Results         []apiResult `json:"results"`
}

// apiResult is a single upstream result. SearXNG calls the snippet "content".
type apiResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Engine  string `json:"engine,omitempty"`
}

// Result is the mapped search result returned to the tool caller.
type Result struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}
