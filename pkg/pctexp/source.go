package pctexp

import "os"

// Source 按名称提供变量值。
//
// Get 应当无副作用，可被重复调用；变量不存在时返回 false。
type Source interface {
	Get(name string) (string, bool)
}

// Map 基于内存表的 [Source]。
type Map map[string]string

// Get 实现 [Source]。
func (m Map) Get(name string) (string, bool) {
	v, ok := m[name]

	return v, ok
}

// SourceFunc 将函数适配为 [Source]。
type SourceFunc func(name string) (string, bool)

// Get 实现 [Source]。
func (f SourceFunc) Get(name string) (string, bool) {
	return f(name)
}

// Env 返回读取进程环境变量的 [Source]。
//
// 已设置但为空的环境变量视为存在。
func Env() Source {
	return SourceFunc(os.LookupEnv)
}

// Chain 按顺序组合多个来源，返回第一个命中的值。nil 来源会被跳过。
func Chain(sources ...Source) Source {
	return chain(sources)
}

type chain []Source

func (c chain) Get(name string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Get(name); ok {
			return v, true
		}
	}

	return "", false
}
