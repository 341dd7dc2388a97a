package core

import (
	"github.com/CodMac/dts-flow/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Scope 声明所在的词法作用域，只有以下三种实现:
// NoScope / ModuleScope / NamespaceScope
type Scope interface {
	isScope()
}

// NoScope 全局作用域，限定名即原名
type NoScope struct{}

// ModuleScope 外部模块作用域
type ModuleScope struct {
	Module *model.ModuleNode
}

// NamespaceScope 命名空间作用域，Session 为 nil 时退化为原名
type NamespaceScope struct {
	Namespace *model.NamespaceNode
	Session   SymbolSession
}

func (NoScope) isScope()        {}
func (ModuleScope) isScope()    {}
func (NamespaceScope) isScope() {}

// ScopeOf 把遍历器当前的上下文节点映射为作用域
func ScopeOf(ctx model.Node, session SymbolSession) Scope {
	switch n := ctx.(type) {
	case *model.ModuleNode:
		return ModuleScope{Module: n}
	case *model.NamespaceNode:
		return NamespaceScope{Namespace: n, Session: session}
	default:
		return NoScope{}
	}
}

// ResolveQualifiedName 计算声明的合并键
func ResolveQualifiedName(raw *sitter.Node, name string, scope Scope) string {
	switch s := scope.(type) {
	case nil, NoScope:
		return name
	case ModuleScope:
		return s.Module.Name() + "$" + name
	case NamespaceScope:
		if s.Session == nil {
			return name
		}
		sym := s.Session.SymbolAtLocation(nameNodeOf(raw))
		return s.Session.FormatQualifiedPath(sym, name, false)
	default:
		panic("core: unknown scope type")
	}
}

// nameNodeOf 取声明的 name 字段；raw 本身就是标识符时直接返回
func nameNodeOf(raw *sitter.Node) *sitter.Node {
	if raw == nil {
		return nil
	}
	if nameNode := raw.ChildByFieldName("name"); nameNode != nil {
		return nameNode
	}
	return raw
}
