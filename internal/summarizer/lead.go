package summarizer

import (
	"context"
	"strings"
	"unicode"
)

// Lead is an extractive summarizer that keeps the first sentences of the text
// Lead 抽取式摘要，保留前几句
type Lead struct {
	sentences int
}

// NewLead 创建 Lead，n<=0 时保留 3 句
func NewLead(n int) *Lead {
	if n <= 0 {
		n = 3
	}
	return &Lead{sentences: n}
}

func (l *Lead) Name() string { return "lead" }

func (l *Lead) Summarize(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	parts := splitSentences(text)
	if len(parts) > l.sentences {
		parts = parts[:l.sentences]
	}
	return strings.Join(parts, " "), nil
}

// splitSentences splits on . ! ? and their CJK forms, and on blank lines
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder

	flush := func() {
		s := strings.Join(strings.Fields(b.String()), " ")
		if s != "" {
			out = append(out, s)
		}
		b.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		switch r {
		case '.', '!', '?':
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		case '。', '！', '？':
			flush()
		case '\n':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				flush()
			}
		}
	}
	flush()
	return out
}

var _ Summarizer = (*Lead)(nil)
