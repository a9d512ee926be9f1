// Package util provides common utility functions
// Package util 提供通用工具函数
package util

import "strings"

const (
	linkOpen  = "[["
	linkClose = "]]"
)

// ExtractLinks returns the inner text of every [[...]] marker in text, in order of appearance.
// Duplicates are kept and [[]] yields an empty string. A "]]" closes the nearest
// preceding "[["; unclosed openers and stray closers are ignored.
// ExtractLinks 按出现顺序返回 text 中每个 [[...]] 的内部文本，保留重复项，[[]] 返回空串
func ExtractLinks(text string) []string {
	links := []string{}
	if text == "" {
		return links
	}

	rest := text
	for {
		open := strings.Index(rest, linkOpen)
		if open < 0 {
			return links
		}
		body := rest[open+len(linkOpen):]

		end := strings.Index(body, linkClose)
		if end < 0 {
			return links
		}

		// "[[a [[b]]" links to "b": re-anchor on the last opener before the closer
		inner := body[:end]
		if last := strings.LastIndex(inner, linkOpen); last >= 0 {
			inner = inner[last+len(linkOpen):]
		}
		links = append(links, inner)

		rest = body[end+len(linkClose):]
	}
}

// NormalizeLinkTitles trims titles, drops empty ones and removes duplicates
// keeping the first occurrence.
// NormalizeLinkTitles 去除首尾空白、丢弃空标题并按首次出现去重
func NormalizeLinkTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
	}
	return out
}
