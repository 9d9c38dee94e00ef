package main

import "mcp-webtools-go/pkg/searxng"

// WebSearchInput defines the input parameters for the web_search tool.
type WebSearchInput struct {
	Query string `json:"query"`
}

// WebSearchOutput is the structured result of the web_search tool.
type WebSearchOutput struct {
	Results []searxng.Result `json:"results"`
}

// VisitPageInput defines the input parameters for the visit_page tool.
type VisitPageInput struct {
	URL string `json:"url"`
	// ReturnRaw skips extraction and returns the response body verbatim.
	ReturnRaw bool `json:"return_raw,omitempty"`
	// Format selects the extracted output: "text" (default) or "markdown".
	Format string `json:"format,omitempty"`
}

// VisitPageOutput is the structured result of the visit_page tool. Every
// field is optional; the extractor fills in what it can identify.
type VisitPageOutput struct {
	Title         string `json:"title,omitempty"`
	Content       string `json:"content,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	Byline        string `json:"byline,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	Lang          string `json:"lang,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
}
