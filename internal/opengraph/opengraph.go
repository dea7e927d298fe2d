package opengraph

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cwhitfield/cert-tracker/internal/logger"
)

const fetchTimeout = 5 * time.Second

// Data holds the og: metadata scraped from a page.
type Data struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"site_name"`
	URL         string `json:"url"`
}

type Fetcher struct {
	http *http.Client
	log  *logger.Logger
}

func NewFetcher(baseLog *logger.Logger) *Fetcher {
	fetcherLog := baseLog.With("service", "OpenGraphFetcher")
	return &Fetcher{
		http: &http.Client{Timeout: fetchTimeout},
		log:  fetcherLog,
	}
}

// Resolve fetches rawURL and extracts its Open Graph metadata. A
// malformed URL, an unreachable host, a non-2xx response, a parse
// failure and a page without og: tags all collapse to (zero, false);
// the caller never sees the underlying error.
func (f *Fetcher) Resolve(ctx context.Context, rawURL string) (Data, bool) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		f.log.Debug("Open Graph resolve rejected URL", "url", rawURL)
		return Data{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Data{}, false
	}
	resp, err := f.http.Do(req)
	if err != nil {
		f.log.Debug("Open Graph fetch failed", "url", rawURL, "error", err)
		return Data{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Debug("Open Graph fetch non-2xx", "url", rawURL, "status", resp.StatusCode)
		return Data{}, false
	}

	data, found := extract(resp.Body)
	if !found {
		f.log.Debug("No Open Graph data on page", "url", rawURL)
		return Data{}, false
	}
	return data, true
}

// extract tokenizes the document and collects og: meta tags. It stops
// at the end of <head> since meta tags never appear past it.
func extract(body io.Reader) (Data, bool) {
	tokenizer := html.NewTokenizer(body)
	var data Data
	found := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return data, found
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "head" {
				return data, found
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var property, content string
			for {
				key, val, more := tokenizer.TagAttr()
				switch string(key) {
				case "property", "name":
					property = string(val)
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}
			if !strings.HasPrefix(property, "og:") || content == "" {
				continue
			}
			found = true
			switch property {
			case "og:title":
				data.Title = content
			case "og:description":
				data.Description = content
			case "og:image":
				data.Image = content
			case "og:site_name":
				data.SiteName = content
			case "og:url":
				data.URL = content
			}
		}
	}
}
