package llm

import (
	"regexp"
	"strings"
)

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// StripCodeFence 는 모델이 응답을 ```json ... ``` 블록으로 감싼 경우 안쪽 본문만 꺼낸다.
// 펜스가 없거나 닫히지 않았으면 앞뒤 공백만 제거한 원문을 돌려준다.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "```") {
		return text
	}
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}
