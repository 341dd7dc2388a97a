package core

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SymbolKind 符号种类
type SymbolKind string

const (
	SymbolModule    SymbolKind = "MODULE"    // 外部模块, 名称带引号输出
	SymbolNamespace SymbolKind = "NAMESPACE" // 命名空间
	SymbolValue     SymbolKind = "VALUE"     // interface / type / class / function / variable ...
)

// Symbol 语义实体：同一父作用域下的同名声明共享一个 Symbol
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Parent    *Symbol
	IsDefault bool
	Decl      *sitter.Node // 第一次出现的声明节点
}

// SymbolSession 符号解析会话，生命周期与一次翻译运行相同
type SymbolSession interface {
	// SymbolAtLocation 返回标识符节点所指向的符号，找不到时返回 nil
	SymbolAtLocation(ident *sitter.Node) *Symbol

	// FormatQualifiedPath 格式化符号的规范路径, sym 为 nil 时返回 fallback
	FormatQualifiedPath(sym *Symbol, fallback string, includeDefault bool) string
}

// FormatSymbolPath 供 SymbolSession 实现复用的默认路径格式:
// 祖先名以 "." 连接，外部模块名加引号 (`"m".N.foo`)，
// includeDefault 为 true 时 default 导出的符号输出为 "default"，否则输出其本地名。
func FormatSymbolPath(sym *Symbol, fallback string, includeDefault bool) string {
	if sym == nil {
		return fallback
	}

	var parts []string
	for s := sym; s != nil; s = s.Parent {
		name := s.Name
		switch {
		case s.IsDefault && includeDefault:
			name = "default"
		case s.Kind == SymbolModule:
			name = strconv.Quote(name)
		}
		parts = append(parts, name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}
