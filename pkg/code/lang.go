package code

import "strings"

// lang stores the English and Chinese text of a message
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

// LangContextKey gin 上下文中保存请求语言的键
const LangContextKey = "lang"

var supportedLanguages = []string{"en", "zh_cn"}

// GetMessage returns the message in the fallback language
// GetMessage 返回默认语言（英文）消息
func (l lang) GetMessage() string {
	return l.In(FALLBACK_LNG)
}

// In returns the message for the given language, falling back to English
// In 返回指定语言的消息，缺失时回退到英文
func (l lang) In(language string) string {
	if language == "zh_cn" && l.zh_cn != "" {
		return l.zh_cn
	}
	if l.en != "" {
		return l.en
	}
	return l.zh_cn
}

// GetSupportedLanguages 返回支持的语言列表
func GetSupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// NormalizeLang maps a request language ("zh-CN", "zh", "en_US") to a supported one,
// or FALLBACK_LNG when none matches
// NormalizeLang 将请求语言归一为受支持的语言
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(language), "-", "_"))
	if language == "zh" || strings.HasPrefix(language, "zh_") {
		return "zh_cn"
	}
	for _, l := range supportedLanguages {
		if l == language {
			return l
		}
	}
	return FALLBACK_LNG
}
