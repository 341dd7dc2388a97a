package model

import sitter "github.com/tree-sitter/go-tree-sitter"

// --- 输出树节点类型 (Output Node Kinds) ---

// NodeKind 是表示输出树节点类型的字符串常量
type NodeKind string

const (
	File              NodeKind = "FILE"               // 单个输入文件的根节点
	Module            NodeKind = "MODULE"             // declare module "x" { ... }
	Declaration       NodeKind = "DECLARATION"        // interface / type / class / enum / function / variable
	Namespace         NodeKind = "NAMESPACE"          // namespace N { ... }
	Import            NodeKind = "IMPORT"             // import ... from "x"
	Export            NodeKind = "EXPORT"             // export { a, b } / export = X
	ExportDeclaration NodeKind = "EXPORT_DECLARATION" // export interface X { ... }
)

// Location 描述了节点在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath,omitempty"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// NewLocation 由 tree-sitter 节点生成位置信息 (行号从 1 开始)
func NewLocation(n *sitter.Node) *Location {
	if n == nil {
		return nil
	}
	return &Location{
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}
