package pctexp

import (
	"iter"
	"strings"
)

// Delimiter 为变量引用的边界字符。
const Delimiter = '%'

// Kind 片段类型。
type Kind uint8

const (
	// Substr 字面量片段，位于变量区域之外。
	Substr Kind = iota + 1
	// Var 变量名片段，位于一对分隔符之间。
	Var
)

func (k Kind) String() string {
	switch k {
	case Substr:
		return "substr"
	case Var:
		return "var"
	default:
		return "unknown"
	}
}

// Entry 是源字符串中的一个非空片段。
//
// Text 是源字符串的子串，与源共享底层存储。
type Entry struct {
	Kind   Kind
	Text   string
	Offset int
}

// ═══════════════════════════════════════════════════════════════════════════
// Splitter
// ═══════════════════════════════════════════════════════════════════════════

// Splitter 对单个字符串做一次性的惰性切分。
//
// 用法与 bufio.Scanner 一致：循环调用 [Splitter.Scan]，通过 [Splitter.Entry]
// 读取当前片段，结束后检查 [Splitter.Err]。
// Splitter 不可重置；多个 Splitter 可以并发扫描同一个字符串。
type Splitter struct {
	src   string
	pos   int  // 下一次查找分隔符的起点
	start int  // 当前待产出片段的起点，总是紧跟最近一个分隔符
	inVar bool // 每遇到一个分隔符翻转一次
	done  bool

	entry Entry
	err   error
}

// Split 返回扫描 s 的 Splitter。
func Split(s string) *Splitter {
	return &Splitter{src: s}
}

// Scan 前进到下一个片段。
//
// 返回 false 表示序列结束：自然结束时 [Splitter.Err] 为 nil，
// 变量未闭合时为 *[FormatError]。之后的调用始终返回 false。
func (s *Splitter) Scan() bool {
	if s.done {
		return false
	}

	for {
		i := strings.IndexByte(s.src[s.pos:], Delimiter)
		if i < 0 {
			break
		}

		n := s.pos + i
		begin := s.start
		wasVar := s.inVar

		s.pos = n + 1
		s.start = n + 1
		s.inVar = !wasVar

		// 相邻分隔符或首字符为分隔符时片段为空，不产出
		if n == begin {
			continue
		}

		kind := Substr
		if wasVar {
			kind = Var
		}
		s.entry = Entry{Kind: kind, Text: s.src[begin:n], Offset: begin}

		return true
	}

	s.done = true
	s.pos = len(s.src)

	if s.inVar {
		s.err = &FormatError{Offset: s.start - 1}
		s.entry = Entry{}

		return false
	}

	if s.start < len(s.src) {
		s.entry = Entry{Kind: Substr, Text: s.src[s.start:], Offset: s.start}
		s.start = len(s.src)

		return true
	}

	s.entry = Entry{}

	return false
}

// Entry 返回最近一次 Scan 成功时产出的片段。
func (s *Splitter) Entry() Entry {
	return s.entry
}

// Err 返回终止序列的格式错误；自然结束时为 nil。
func (s *Splitter) Err() error {
	return s.err
}

// All 以迭代器形式返回剩余片段。
//
// 格式错误作为最后一项 (Entry{}, err) 产出，之后不再产出任何项。
func (s *Splitter) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for s.Scan() {
			if !yield(s.entry, nil) {
				return
			}
		}
		if s.err != nil {
			yield(Entry{}, s.err)
		}
	}
}

// Entries 一次性切分 s，返回全部片段或第一个错误。
func Entries(s string) ([]Entry, error) {
	var entries []Entry
	sp := Split(s)
	for sp.Scan() {
		entries = append(entries, sp.Entry())
	}
	if err := sp.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
