package node

import (
	"encoding/json"
	"strings"
)

// DecodeJSONObjectWithKeys 在文本中查找第一个包含全部 keys 的 JSON 对象并解码到 out。
// 模型可能会在 JSON 前后夹杂说明文字或 markdown 代码块。
// 逐个尝试 '{' 起点，Decoder 读完一个值即停止，因此尾随文本不影响解码。
func DecodeJSONObjectWithKeys(s string, out any, keys ...string) bool {
	fields, raw, ok := findObject(s, keys)
	if !ok || fields == nil {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func findObject(s string, keys []string) (map[string]json.RawMessage, string, bool) {
	for offset := 0; offset < len(s); {
		idx := strings.IndexByte(s[offset:], '{')
		if idx < 0 {
			break
		}
		start := offset + idx
		offset = start + 1

		dec := json.NewDecoder(strings.NewReader(s[start:]))
		var fields map[string]json.RawMessage
		if err := dec.Decode(&fields); err != nil {
			continue
		}
		if !hasKeys(fields, keys) {
			continue
		}
		end := start + int(dec.InputOffset())
		return fields, s[start:end], true
	}
	return nil, "", false
}

func hasKeys(fields map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	return true
}
