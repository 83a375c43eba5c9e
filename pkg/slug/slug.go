// Package slug 生成状态键等机器可读的标识。
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun 匹配连续的空白字符。
	whitespaceRun = regexp.MustCompile(`\s+`)
	// disallowed 匹配 [a-z0-9_] 以外的所有字符。
	disallowed = regexp.MustCompile(`[^a-z0-9_]`)
)

// StatusKey 由状态名生成 status_key：
// 小写，连续空白替换为一个下划线，去掉 [a-z0-9_] 以外的字符。
// 例如 "New Status!" → "new_status"。
func StatusKey(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = whitespaceRun.ReplaceAllString(result, "_")
	return disallowed.ReplaceAllString(result, "")
}
