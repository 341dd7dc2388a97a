package parser

import (
	"fmt"
	"os"

	"github.com/CodMac/dts-flow/core"
	"github.com/pkg/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// GetLanguage 返回语言对应的 tree-sitter 语法
func GetLanguage(lang core.Language) (*sitter.Language, error) {
	switch lang {
	case core.LangTypeScript:
		return sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), nil
	}
	return nil, fmt.Errorf("no grammar registered for language: %s", lang)
}

// TreeSitterParser 对 tree-sitter 解析器的简单封装，不可并发使用
type TreeSitterParser struct {
	lang   core.Language
	parser *sitter.Parser
	trees  []*sitter.Tree
}

func NewParser(lang core.Language) (*TreeSitterParser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(tsLang); err != nil {
		p.Close()
		return nil, errors.Wrapf(err, "failed to set language: %s", lang)
	}
	return &TreeSitterParser{lang: lang, parser: p}, nil
}

// Parse 解析源码并返回根节点。语法树在 Close 之前一直有效。
func (tp *TreeSitterParser) Parse(source []byte) (*sitter.Node, error) {
	tree := tp.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", tp.lang)
	}
	tp.trees = append(tp.trees, tree)
	return tree.RootNode(), nil
}

func (tp *TreeSitterParser) ParseFile(filePath string) (*sitter.Node, *[]byte, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read: %v", filePath)
	}

	root, err := tp.Parse(source)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to parse: %v", filePath)
	}
	return root, &source, nil
}

func (tp *TreeSitterParser) Close() {
	for _, t := range tp.trees {
		t.Close()
	}
	tp.trees = nil
	tp.parser.Close()
}
