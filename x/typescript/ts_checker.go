package typescript

import (
	"strings"

	"github.com/CodMac/dts-flow/core"
	"github.com/pkg/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type byteRange struct{ start, end uint }

type symbolKey struct {
	parent *core.Symbol
	name   string
}

// Checker 单文件范围内的符号解析会话。
// 同一父作用域下的同名声明（interface 合并、namespace 重开）共享同一个 Symbol。
type Checker struct {
	src       []byte
	byName    map[symbolKey]*core.Symbol
	byRange   map[byteRange]*core.Symbol
	scopeSyms map[byteRange]*core.Symbol // module / internal_module 节点 -> 其最内层符号
}

// NewChecker 对整棵树执行 DeclarationQuery 建立符号索引
func NewChecker(rootNode *sitter.Node, sourceBytes *[]byte) (*Checker, error) {
	c := &Checker{
		byName:    make(map[symbolKey]*core.Symbol),
		byRange:   make(map[byteRange]*core.Symbol),
		scopeSyms: make(map[byteRange]*core.Symbol),
	}
	if sourceBytes != nil {
		c.src = *sourceBytes
	}
	if rootNode == nil {
		return c, nil
	}

	tsLang := sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	q, qErr := sitter.NewQuery(tsLang, DeclarationQuery)
	if qErr != nil {
		return nil, errors.Errorf("declaration query init error: %v", qErr)
	}
	defer q.Close()

	nameIdx, _ := q.CaptureIndexForName("name")
	declIdx, _ := q.CaptureIndexForName("decl")

	qc := sitter.NewQueryCursor()
	defer qc.Close()

	matches := qc.Matches(q, rootNode, c.src)
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		names := match.NodesForCaptureIndex(nameIdx)
		decls := match.NodesForCaptureIndex(declIdx)
		if len(names) == 0 || len(decls) == 0 {
			continue
		}
		c.declare(&decls[0], &names[0])
	}
	return c, nil
}

func (c *Checker) declare(decl, nameNode *sitter.Node) *core.Symbol {
	key := rangeOf(decl)
	if sym, ok := c.scopeSyms[key]; ok {
		c.byRange[rangeOf(nameNode)] = sym
		return sym
	}

	parent := c.enclosingSymbol(decl)
	isDefault := isDefaultExport(decl)

	var sym *core.Symbol
	switch decl.Kind() {
	case kindModule:
		if nameNode.Kind() == kindString {
			sym = c.intern(parent, unquote(c.text(nameNode)), core.SymbolModule, decl, false)
			break
		}
		sym = c.internPath(parent, c.text(nameNode), decl)
	case kindInternalModule:
		sym = c.internPath(parent, c.text(nameNode), decl)
	default:
		sym = c.intern(parent, c.text(nameNode), core.SymbolValue, decl, isDefault)
	}

	if decl.Kind() == kindModule || decl.Kind() == kindInternalModule {
		c.scopeSyms[key] = sym
	}
	c.byRange[rangeOf(nameNode)] = sym
	return sym
}

// internPath 处理 namespace A.B.C：每一段一个命名空间符号，返回最后一段
func (c *Checker) internPath(parent *core.Symbol, dotted string, decl *sitter.Node) *core.Symbol {
	sym := parent
	for _, seg := range strings.Split(dotted, ".") {
		sym = c.intern(sym, strings.TrimSpace(seg), core.SymbolNamespace, decl, false)
	}
	return sym
}

func (c *Checker) intern(parent *core.Symbol, name string, kind core.SymbolKind, decl *sitter.Node, isDefault bool) *core.Symbol {
	key := symbolKey{parent: parent, name: name}
	if sym, ok := c.byName[key]; ok {
		sym.IsDefault = sym.IsDefault || isDefault
		return sym
	}
	sym := &core.Symbol{Name: name, Kind: kind, Parent: parent, IsDefault: isDefault, Decl: decl}
	c.byName[key] = sym
	return sym
}

// enclosingSymbol 沿父链找到最近的 module / internal_module 并返回其符号
func (c *Checker) enclosingSymbol(decl *sitter.Node) *core.Symbol {
	for curr := decl.Parent(); curr != nil; curr = curr.Parent() {
		if curr.Kind() != kindModule && curr.Kind() != kindInternalModule {
			continue
		}
		nameNode := curr.ChildByFieldName("name")
		if nameNode == nil {
			return nil
		}
		return c.declare(curr, nameNode)
	}
	return nil
}

func (c *Checker) SymbolAtLocation(ident *sitter.Node) *core.Symbol {
	if ident == nil {
		return nil
	}
	return c.byRange[rangeOf(ident)]
}

func (c *Checker) FormatQualifiedPath(sym *core.Symbol, fallback string, includeDefault bool) string {
	return core.FormatSymbolPath(sym, fallback, includeDefault)
}

func (c *Checker) text(n *sitter.Node) string {
	return n.Utf8Text(c.src)
}

func rangeOf(n *sitter.Node) byteRange {
	return byteRange{start: n.StartByte(), end: n.EndByte()}
}

// isDefaultExport export default interface Foo {}
func isDefaultExport(decl *sitter.Node) bool {
	parent := decl.Parent()
	if parent == nil || parent.Kind() != kindExport {
		return false
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		if child := parent.Child(uint(i)); child != nil && child.Kind() == "default" {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
