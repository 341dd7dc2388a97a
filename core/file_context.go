package core

import (
	"github.com/CodMac/dts-flow/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// FileContext 单个文件的一次翻译运行：语法树、源码、独占的 Factory 与输出树根
type FileContext struct {
	FilePath    string
	RootNode    *sitter.Node
	SourceBytes *[]byte
	Factory     *Factory
	Output      *model.FileNode
}

func NewFileContext(filePath string, rootNode *sitter.Node, sourceBytes *[]byte, factory *Factory) *FileContext {
	return &FileContext{
		FilePath:    filePath,
		RootNode:    rootNode,
		SourceBytes: sourceBytes,
		Factory:     factory,
		Output:      model.NewFileNode(filePath, rootNode),
	}
}

// Text 返回节点对应的源码文本
func (fc *FileContext) Text(n *sitter.Node) string {
	if n == nil || fc.SourceBytes == nil {
		return ""
	}
	return n.Utf8Text(*fc.SourceBytes)
}
