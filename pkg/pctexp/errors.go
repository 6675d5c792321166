package pctexp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat 表示源字符串中存在未闭合的变量引用。
	ErrInvalidFormat = errors.New("pctexp: invalid format")

	// ErrMissingVariable 表示变量名在 [Source] 中不存在。
	ErrMissingVariable = errors.New("pctexp: missing variable")
)

// FormatError 由 [Splitter] 在扫描结束且仍处于变量区域时产生。
type FormatError struct {
	// Offset 为未闭合分隔符的字节偏移。
	Offset int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pctexp: unterminated variable reference at offset %d", e.Offset)
}

// Unwrap 使 errors.Is(err, ErrInvalidFormat) 成立。
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// MissingVariableError 由 [Expand] 在变量无法解析时产生。
type MissingVariableError struct {
	Name   string
	Offset int // 变量名在源字符串中的字节偏移
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("pctexp: unknown variable %q at offset %d", e.Name, e.Offset)
}

// Unwrap 使 errors.Is(err, ErrMissingVariable) 成立。
func (e *MissingVariableError) Unwrap() error {
	return ErrMissingVariable
}
