// Package guess holds the offline rules of the character guessing game:
// keyword answers, guess detection and secret redaction.
package guess

import (
	"regexp"
	"strings"
)

// Verdict 是离线规则给出的回答。
type Verdict string

const (
	Yes   Verdict = "Yes."
	No    Verdict = "No."
	Maybe Verdict = "Maybe."
)

// Decision 记录回答以及命中的关键词。
type Decision struct {
	Verdict Verdict
	Matched []string
}

// Answer 根据角色事实关键词回答是非题。命中任一事实回答 Yes，
// 出现二选一的问法回答 Maybe，其余回答 No。
func Answer(question string, facts []string) Decision {
	normalized := normalize(question)
	if normalized == "" {
		return Decision{Verdict: Maybe}
	}

	var matched []string
	for _, fact := range facts {
		f := normalize(fact)
		if f == "" {
			continue
		}
		if strings.Contains(normalized, f) {
			matched = append(matched, f)
		}
	}

	switch {
	case len(matched) > 0:
		return Decision{Verdict: Yes, Matched: matched}
	case strings.Contains(" "+normalized+" ", " or "):
		return Decision{Verdict: Maybe}
	default:
		return Decision{Verdict: No}
	}
}

// ParseGuess 识别 "guess: 名字" 形式的显式猜测。
func ParseGuess(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(trimmed), "guess:") {
		return "", false
	}
	name := strings.TrimSpace(trimmed[len("guess:"):])
	return name, name != ""
}

// SameName 比较猜测与谜底，忽略大小写和首尾空白。
func SameName(guess, secret string) bool {
	g := strings.TrimSpace(guess)
	s := strings.TrimSpace(secret)
	return g != "" && strings.EqualFold(g, s)
}

// Redact 把文本中出现的谜底（不区分大小写）替换为占位符。
func Redact(text, secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" || text == "" {
		return text
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(secret))
	return re.ReplaceAllString(text, "[hidden]")
}

// Mentions 判断文本是否包含谜底。
func Mentions(text, secret string) bool {
	secret = strings.TrimSpace(secret)
	return secret != "" && strings.Contains(strings.ToLower(text), strings.ToLower(secret))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
