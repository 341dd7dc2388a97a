package typescript

import (
	"github.com/CodMac/dts-flow/core"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func init() {
	core.RegisterWalker(core.LangTypeScript, NewTypeScriptWalker(nil))
	core.RegisterMemberExtractor(core.LangTypeScript, NewMemberExtractor)
	core.RegisterSessionFactory(core.LangTypeScript, func(rootNode *sitter.Node, sourceBytes *[]byte) (core.SymbolSession, error) {
		return NewChecker(rootNode, sourceBytes)
	})
}
