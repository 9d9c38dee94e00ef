package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"mcp-webtools-go/pkg/config"
	"mcp-webtools-go/pkg/readability"
	"mcp-webtools-go/pkg/searxng"
	"mcp-webtools-go/pkg/webfetch"
)

// extractFailedMessage is the fixed tool result when no article is found.
const extractFailedMessage = "Failed to extract readable content."

// toolHandlers holds the per-process clients and the host configuration.
// Handlers themselves are stateless; nothing outlives a call.
type toolHandlers struct {
	cfg       *config.Config
	searcher  *searxng.Client
	fetcher   *webfetch.Client
	extractor *readability.Extractor
	log       zerolog.Logger
}

func newToolHandlers(cfg *config.Config, searcher *searxng.Client, fetcher *webfetch.Client, log zerolog.Logger) *toolHandlers {
	return &toolHandlers{
		cfg:       cfg,
		searcher:  searcher,
		fetcher:   fetcher,
		extractor: readability.NewExtractor(),
		log:       log,
	}
}

func (h *toolHandlers) webSearch(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[WebSearchInput]) (*mcp.CallToolResultFor[WebSearchOutput], error) {
	query := strings.TrimSpace(params.Arguments.Query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	results, err := h.searcher.Search(ctx, query, searxng.Options{
		Engines:    h.cfg.Search.Engines,
		Language:   h.cfg.Search.Language,
		SafeSearch: h.cfg.Search.SafeSearch.Code(),
		MaxResults: h.cfg.Search.MaxResults,
	})
	var statusErr *webfetch.StatusError
	if errors.As(err, &statusErr) {
		// Upstream refusals are a normal tool result, not a protocol error.
		msg := fmt.Sprintf("Search request failed: %s", statusErr.Status)
		h.log.Warn().Str("query", query).Str("status", statusErr.Status).Msg("search request failed")
		return &mcp.CallToolResultFor[WebSearchOutput]{
			Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	for i, res := range results {
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s\n   %s", i+1, res.Title, res.URL, res.Summary))
	}
	text := strings.Join(lines, "\n---\n")
	if len(results) == 0 {
		text = "No results found."
	}

	return &mcp.CallToolResultFor[WebSearchOutput]{
		Content:           []mcp.Content{&mcp.TextContent{Text: text}},
		StructuredContent: WebSearchOutput{Results: results},
	}, nil
}

func (h *toolHandlers) visitPage(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[VisitPageInput]) (*mcp.CallToolResultFor[VisitPageOutput], error) {
	target := strings.TrimSpace(params.Arguments.URL)
	if target == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", target, err)
	}

	body, err := h.fetcher.Get(ctx, target)
	var statusErr *webfetch.StatusError
	if errors.As(err, &statusErr) {
		msg := fmt.Sprintf("Failed to fetch %s: %s", target, statusErr.Status)
		h.log.Warn().Str("url", target).Str("status", statusErr.Status).Msg("page fetch failed")
		return &mcp.CallToolResultFor[VisitPageOutput]{
			Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if params.Arguments.ReturnRaw || h.cfg.Visit.ForceRaw {
		raw := string(body)
		return &mcp.CallToolResultFor[VisitPageOutput]{
			Content:           []mcp.Content{&mcp.TextContent{Text: raw}},
			StructuredContent: VisitPageOutput{Content: raw},
		}, nil
	}

	article, err := h.extractor.Extract(string(body))
	if errors.Is(err, readability.ErrNoArticle) {
		h.log.Debug().Str("url", target).Msg("no readable article found")
		return &mcp.CallToolResultFor[VisitPageOutput]{
			Content: []mcp.Content{&mcp.TextContent{Text: extractFailedMessage}},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", target, err)
	}

	var content string
	if params.Arguments.Format == "markdown" {
		contentHTML := article.ContentHTML
		if resolved, err := readability.ResolveLinks(contentHTML, target); err == nil {
			contentHTML = resolved
		}
		converter := md.NewConverter("", true, nil)
		markdown, err := converter.ConvertString(contentHTML)
		if err != nil {
			return nil, fmt.Errorf("failed to convert article to Markdown for %s: %w", target, err)
		}
		content = strings.TrimSpace(markdown)
	} else {
		content = readability.NormalizeText(article.TextContent)
	}

	truncated := false
	if max := h.cfg.Visit.MaxContentLength; max > 0 && len(content) > max {
		content = readability.Truncate(content, max)
		truncated = true
	}
	h.log.Debug().Str("url", target).Int("length", len(content)).Bool("truncated", truncated).Msg("page extracted")

	output := VisitPageOutput{
		Title:         article.Title,
		Content:       content,
		Excerpt:       article.Excerpt,
		Byline:        article.Byline,
		SiteName:      article.SiteName,
		Lang:          article.Lang,
		PublishedTime: article.PublishedTime,
	}

	return &mcp.CallToolResultFor[VisitPageOutput]{
		Content:           []mcp.Content{&mcp.TextContent{Text: content}},
		StructuredContent: output,
	}, nil
}
