package model

import sitter "github.com/tree-sitter/go-tree-sitter"

// Child 是节点下的一个具名子节点
type Child struct {
	Key  string
	Node Node
}

// Node 是输出树中所有节点的公共接口。
// 子节点按首次插入顺序保存；对已存在的 key 再次 AddChild 会替换节点但保留原位置。
type Node interface {
	Kind() NodeKind
	Name() string
	Raw() *sitter.Node
	Location() *Location

	AddChild(key string, child Node)
	Child(key string) (Node, bool)
	Children() []Child
}

type baseNode struct {
	raw      *sitter.Node
	keys     []string
	children map[string]Node
}

func newBaseNode(raw *sitter.Node) baseNode {
	return baseNode{raw: raw, children: make(map[string]Node)}
}

func (b *baseNode) Raw() *sitter.Node { return b.raw }

func (b *baseNode) Location() *Location { return NewLocation(b.raw) }

func (b *baseNode) AddChild(key string, child Node) {
	if _, ok := b.children[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.children[key] = child
}

func (b *baseNode) Child(key string) (Node, bool) {
	n, ok := b.children[key]
	return n, ok
}

func (b *baseNode) Children() []Child {
	result := make([]Child, 0, len(b.keys))
	for _, k := range b.keys {
		result = append(result, Child{Key: k, Node: b.children[k]})
	}
	return result
}

// FileNode 单个输入文件输出树的根
type FileNode struct {
	baseNode
	path string
}

func NewFileNode(path string, root *sitter.Node) *FileNode {
	return &FileNode{baseNode: newBaseNode(root), path: path}
}

func (n *FileNode) Kind() NodeKind { return File }
func (n *FileNode) Name() string   { return n.path }

// ModuleNode 对应一个模块作用域 (declare module "name")
type ModuleNode struct {
	baseNode
	name string
}

func NewModuleNode(name string) *ModuleNode {
	return &ModuleNode{baseNode: newBaseNode(nil), name: name}
}

func (n *ModuleNode) Kind() NodeKind { return Module }
func (n *ModuleNode) Name() string   { return n.name }

// NamespaceNode 对应一个命名空间作用域
type NamespaceNode struct {
	baseNode
	name string
}

func NewNamespaceNode(name string) *NamespaceNode {
	return &NamespaceNode{baseNode: newBaseNode(nil), name: name}
}

func (n *NamespaceNode) Kind() NodeKind { return Namespace }
func (n *NamespaceNode) Name() string   { return n.name }

// ImportNode / ExportNode / ExportDeclarationNode 只是原始语法节点的薄包装

type ImportNode struct{ baseNode }

func NewImportNode(raw *sitter.Node) *ImportNode { return &ImportNode{newBaseNode(raw)} }

func (n *ImportNode) Kind() NodeKind { return Import }
func (n *ImportNode) Name() string   { return "" }

type ExportNode struct{ baseNode }

func NewExportNode(raw *sitter.Node) *ExportNode { return &ExportNode{newBaseNode(raw)} }

func (n *ExportNode) Kind() NodeKind { return Export }
func (n *ExportNode) Name() string   { return "" }

type ExportDeclarationNode struct{ baseNode }

func NewExportDeclarationNode(raw *sitter.Node) *ExportDeclarationNode {
	return &ExportDeclarationNode{newBaseNode(raw)}
}

func (n *ExportDeclarationNode) Kind() NodeKind { return ExportDeclaration }
func (n *ExportDeclarationNode) Name() string   { return "" }
