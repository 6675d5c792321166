package pctexp

import (
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 展开
// ═══════════════════════════════════════════════════════════════════════════

// Expand 将 s 中的每个 %NAME% 替换为 src 中对应的值。
//
// 从左到右扫描，遇到第一个错误立即返回，不返回部分结果：
//   - 变量未闭合 - *[FormatError]
//   - 变量不存在 - *[MissingVariableError]
//
// src 为 nil 时视为空来源。不含分隔符的 s 原样返回。
func Expand(s string, src Source) (string, error) {
	if strings.IndexByte(s, Delimiter) < 0 {
		return s, nil
	}
	if src == nil {
		src = Map(nil)
	}

	var buf strings.Builder
	buf.Grow(len(s))

	sp := Split(s)
	for sp.Scan() {
		e := sp.Entry()
		if e.Kind == Substr {
			buf.WriteString(e.Text)
			continue
		}

		val, ok := src.Get(e.Text)
		if !ok {
			return "", &MissingVariableError{Name: e.Text, Offset: e.Offset}
		}
		buf.WriteString(val)
	}
	if err := sp.Err(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// MustExpand 调用 [Expand] 并在失败时 panic，适合启动阶段的固定模板。
func MustExpand(s string, src Source) string {
	out, err := Expand(s, src)
	if err != nil {
		panic(fmt.Sprintf("pctexp: %q: %v", s, err))
	}

	return out
}

// Validate 仅检查 s 的结构，不解析变量。
func Validate(s string) error {
	sp := Split(s)
	for sp.Scan() {
	}

	return sp.Err()
}

// Names 返回 s 引用的变量名，去重并保持首次出现的顺序。
func Names(s string) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})

	sp := Split(s)
	for sp.Scan() {
		e := sp.Entry()
		if e.Kind != Var {
			continue
		}
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		names = append(names, e.Text)
	}
	if err := sp.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 批量展开
// ═══════════════════════════════════════════════════════════════════════════

// ExpandAll 依次展开 ss 中的每个字符串，遇到第一个错误即返回。
func ExpandAll(ss []string, src Source) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	out := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := Expand(s, src)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = expanded
	}

	return out, nil
}

// ExpandMap 递归展开 m 中所有字符串值，返回新的 map。
//
// 嵌套的 map[string]any 与 []any 会递归处理，其他类型原样保留。
// 错误信息包含出错值的 key 路径（如 server.addr、hosts[1]）。
func ExpandMap(m map[string]any, src Source) (map[string]any, error) {
	return expandMap(m, src, "")
}

func expandMap(m map[string]any, src Source, prefix string) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}

	out := make(map[string]any, len(m))
	for key, val := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		expanded, err := expandValue(val, src, path)
		if err != nil {
			return nil, err
		}
		out[key] = expanded
	}

	return out, nil
}

func expandValue(val any, src Source, path string) (any, error) {
	switch typed := val.(type) {
	case string:
		out, err := Expand(typed, src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return out, nil
	case map[string]any:
		return expandMap(typed, src, path)
	case []any:
		out := make([]any, len(typed))
		for i, elem := range typed {
			expanded, err := expandValue(elem, src, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}

		return out, nil
	default:
		return val, nil
	}
}
