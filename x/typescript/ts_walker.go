package typescript

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Walker 遍历 .d.ts 语法树，对每个声明调用一次 Factory，并把返回的节点挂到当前上下文下
type Walker struct {
	logger *slog.Logger
}

// NewTypeScriptWalker logger 为 nil 时每次遍历使用当时的 slog.Default()
func NewTypeScriptWalker(logger *slog.Logger) *Walker {
	return &Walker{logger: logger}
}

func (w *Walker) log() *slog.Logger {
	if w.logger == nil {
		return slog.Default()
	}
	return w.logger
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

func (w *Walker) Walk(fCtx *core.FileContext) error {
	if fCtx == nil || fCtx.RootNode == nil {
		return fmt.Errorf("nothing to walk")
	}
	if fCtx.Factory == nil {
		return fmt.Errorf("no factory for file: %s", fCtx.FilePath)
	}
	if fCtx.RootNode.HasError() {
		// 不做语法校验：带错误的树照常遍历，能识别多少是多少
		w.log().Warn("syntax errors in input", "file", fCtx.FilePath)
	}

	st := &walkState{
		fCtx:     fCtx,
		factory:  fCtx.Factory,
		logger:   w.log().With("file", fCtx.FilePath),
		ordinals: make(map[ordinalKey]int),
	}
	st.walkChildren(fCtx.RootNode, fCtx.Output)
	return nil
}

type ordinalKey struct {
	owner  model.Node
	prefix string
}

type walkState struct {
	fCtx     *core.FileContext
	factory  *core.Factory
	logger   *slog.Logger
	ordinals map[ordinalKey]int
}

func (s *walkState) walkChildren(node *sitter.Node, ctx model.Node) {
	if node == nil {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(uint(i)); child != nil {
			s.visit(child, ctx)
		}
	}
}

// ==========================================
// 2. 声明分发 (Declaration Dispatch)
// ==========================================

func (s *walkState) visit(node *sitter.Node, ctx model.Node) {
	switch node.Kind() {
	case kindAmbient, kindStatementBlock, kindExpressionStmt, kindError:
		// declare global { ... } 的内容挂在当前上下文下
		s.walkChildren(node, ctx)
	case kindModule:
		s.visitModule(node, ctx)
	case kindInternalModule:
		s.visitNamespace(node, s.text(node.ChildByFieldName("name")), ctx)
	case kindInterface, kindTypeAlias, kindClass, kindAbstractClass, kindEnum:
		s.visitDeclaration(node, ctx)
	case kindFunctionSignature, kindFunction:
		s.visitFunction(node, ctx)
	case kindLexical, kindVariable:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(uint(i))
			if child != nil && child.Kind() == kindVariableDeclarator {
				s.visitDeclaration(child, ctx)
			}
		}
	case kindImport, kindImportAlias:
		ctx.AddChild(s.nextKey(ctx, keyImportPrefix), s.factory.CreateImport(node))
	case kindExport:
		s.visitExport(node, ctx)
	}
}

// visitModule declare module "m" {}：同名模块的多个块共享一个 ModuleNode
func (s *walkState) visitModule(node *sitter.Node, ctx model.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	if nameNode.Kind() != kindString {
		// declare module Foo.Bar {} 等价于 namespace
		s.visitNamespace(node, s.text(nameNode), ctx)
		return
	}

	name := unquote(s.text(nameNode))
	module := s.factory.GetOrCreateModule(name)
	if reachable(module, ctx) {
		// 模块节点按名字共享，挂到自己的子树下会让输出树成环
		s.logger.Warn("module nested inside itself, not attached", "module", name)
	} else {
		ctx.AddChild(keyModulePrefix+name, module)
	}
	s.walkChildren(node.ChildByFieldName("body"), module)
}

// visitNamespace namespace A.B {} 每一段一个 NamespaceNode；同一上下文中重开的命名空间复用已挂载的节点
func (s *walkState) visitNamespace(node *sitter.Node, dotted string, ctx model.Node) {
	current := ctx
	for _, seg := range strings.Split(dotted, ".") {
		seg = strings.TrimSpace(seg)
		key := keyNamespacePrefix + seg
		if existing, ok := current.Child(key); ok && existing.Kind() == model.Namespace {
			s.logger.Debug("namespace reopened", "name", seg)
			current = existing
			continue
		}
		ns := s.factory.CreateNamespace(seg)
		current.AddChild(key, ns)
		current = ns
	}
	s.walkChildren(node.ChildByFieldName("body"), current)
}

func (s *walkState) visitDeclaration(node *sitter.Node, ctx model.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		// 解构声明等没有简单名字的情况
		anon := s.factory.CreateAnonymousDeclaration(node)
		ctx.AddChild(s.nextKey(ctx, keyAnonymousPrefix), anon)
		return
	}

	name := s.text(nameNode)
	decl := s.factory.GetOrCreateDeclaration(node, name, core.ScopeOf(ctx, s.factory.Session()))
	ctx.AddChild(name, decl)
	s.logger.Debug("declaration", "name", name, "members", len(decl.Members()))

	switch node.Kind() {
	case kindTypeAlias:
		s.collectAnonymous(node.ChildByFieldName("value"), decl)
	case kindInterface, kindClass, kindAbstractClass:
		s.collectAnonymous(node.ChildByFieldName("body"), decl)
	case kindVariableDeclarator:
		s.collectAnonymous(node.ChildByFieldName("type"), decl)
	}
}

// visitFunction 重载的函数各自成为独立命名的节点
func (s *walkState) visitFunction(node *sitter.Node, ctx model.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		ctx.AddChild(s.nextKey(ctx, keyAnonymousPrefix), s.factory.CreateAnonymousDeclaration(node))
		return
	}
	s.factory.RegisterFunctionDeclaration(node, s.text(nameNode), ctx)
}

// visitExport export interface X {} 既产生 ExportDeclaration，也照常翻译内部声明
func (s *walkState) visitExport(node *sitter.Node, ctx model.Node) {
	key := s.nextKey(ctx, keyExportPrefix)
	decl := node.ChildByFieldName("declaration")
	if decl == nil {
		ctx.AddChild(key, s.factory.CreateExport(node))
		return
	}
	ctx.AddChild(key, s.factory.CreateExportDeclaration(node))
	s.visit(decl, ctx)
}

// collectAnonymous 嵌套的对象类型字面量作为匿名声明挂到所属声明下，从不参与合并
func (s *walkState) collectAnonymous(node *sitter.Node, owner model.Node) {
	if node == nil {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil {
			continue
		}
		if child.Kind() == kindObjectType {
			anon := s.factory.CreateAnonymousDeclaration(child)
			owner.AddChild(s.nextKey(owner, keyAnonymousPrefix), anon)
			s.collectAnonymous(child, anon)
			continue
		}
		s.collectAnonymous(child, owner)
	}
}

// ==========================================
// 3. 辅助方法 (Helpers)
// ==========================================

func (s *walkState) nextKey(owner model.Node, prefix string) string {
	k := ordinalKey{owner: owner, prefix: prefix}
	s.ordinals[k]++
	return prefix + strconv.Itoa(s.ordinals[k])
}

// reachable target 是否就是 from 或位于 from 的子树中
func reachable(from, target model.Node) bool {
	seen := make(map[model.Node]bool)
	var dfs func(n model.Node) bool
	dfs = func(n model.Node) bool {
		if n == target {
			return true
		}
		if seen[n] {
			return false
		}
		seen[n] = true
		for _, c := range n.Children() {
			if dfs(c.Node) {
				return true
			}
		}
		return false
	}
	return dfs(from)
}

func (s *walkState) text(n *sitter.Node) string {
	return s.fCtx.Text(n)
}
