// Package pctexp 提供 %NAME% 形式的字符串变量展开。
//
// 处理分为两步：
//  1. [Split] 单次扫描源字符串，惰性产出 [Substr] / [Var] 两类片段
//  2. [Expand] 逐个消费片段，通过 [Source] 解析变量名并拼接结果
//
// 片段直接引用源字符串的子串，扫描过程不分配内存。
//
// # 语义说明
//
//  1. 分隔符固定为 '%'，两个分隔符之间的文本为变量名
//  2. 相邻分隔符 "%%" 之间的空片段被忽略（不是转义，不会输出字面量 %）
//  3. 分隔符个数为奇数时，最后一个变量未闭合，返回 [ErrInvalidFormat]
//  4. 变量在 [Source] 中不存在时，返回 [ErrMissingVariable]
//  5. 展开是全有或全无的：出错时不返回部分结果
//
// # 快速开始
//
// 展开变量：
//
//	out, err := pctexp.Expand("foo%bar%", pctexp.Map{"bar": "X"})
//	// out: "fooX"
//
// 仅检查结构，不解析变量：
//
//	err := pctexp.Validate("abc%missing")
//	// errors.Is(err, pctexp.ErrInvalidFormat) == true
//
// 逐个读取片段：
//
//	sp := pctexp.Split("%foo%bar")
//	for sp.Scan() {
//	    e := sp.Entry()
//	    fmt.Println(e.Kind, e.Text)
//	}
//	if err := sp.Err(); err != nil {
//	    // 未闭合的变量引用
//	}
//
// 也可以使用 range-over-func：
//
//	for e, err := range pctexp.Split(s).All() {
//	    ...
//	}
//
// # 变量来源
//
// [Source] 只需实现 Get 方法。内置实现：
//   - [Map] - 内存表
//   - [SourceFunc] - 函数适配
//   - [Env] - 进程环境变量
//   - [Chain] - 按顺序组合多个来源，先命中者生效
package pctexp
