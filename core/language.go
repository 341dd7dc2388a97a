package core

import (
	"fmt"

	"github.com/CodMac/dts-flow/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language 输入语言
type Language string

const (
	LangTypeScript Language = "typescript"
)

// --- 语言插件接口 ---

// Walker 遍历语法树，按声明调用 Factory 的工厂方法，并把返回的节点挂到自己的输出树上
type Walker interface {
	Walk(fCtx *FileContext) error
}

// MemberExtractor 从一个声明语法节点中提取结构签名
type MemberExtractor interface {
	Members(raw *sitter.Node) []model.Member
}

// MemberExtractorFactory 为单个文件的源码创建 MemberExtractor
type MemberExtractorFactory func(sourceBytes *[]byte) MemberExtractor

// SessionFactory 为单个文件构建符号解析会话
type SessionFactory func(rootNode *sitter.Node, sourceBytes *[]byte) (SymbolSession, error)

var (
	walkerMap                = make(map[Language]Walker)
	memberExtractorFactories = make(map[Language]MemberExtractorFactory)
	sessionFactories         = make(map[Language]SessionFactory)
)

// RegisterWalker 注册一个语言与其对应的 Walker
func RegisterWalker(lang Language, walker Walker) {
	walkerMap[lang] = walker
}

// GetWalker 根据语言类型获取对应的 Walker 实例。
func GetWalker(lang Language) (Walker, error) {
	walker, ok := walkerMap[lang]
	if !ok {
		return nil, fmt.Errorf("no walker registered for language: %s", lang)
	}
	return walker, nil
}

// RegisterMemberExtractor 注册一个语言与其对应的 MemberExtractor 工厂函数
func RegisterMemberExtractor(lang Language, factory MemberExtractorFactory) {
	memberExtractorFactories[lang] = factory
}

// GetMemberExtractor 根据语言类型为给定源码创建 MemberExtractor 实例。
func GetMemberExtractor(lang Language, sourceBytes *[]byte) (MemberExtractor, error) {
	factory, ok := memberExtractorFactories[lang]
	if !ok {
		return nil, fmt.Errorf("no member extractor registered for language: %s", lang)
	}
	return factory(sourceBytes), nil
}

// RegisterSessionFactory 注册一个语言与其对应的符号会话工厂函数
func RegisterSessionFactory(lang Language, factory SessionFactory) {
	sessionFactories[lang] = factory
}

// NewSession 根据语言类型为单个文件创建符号会话。
func NewSession(lang Language, rootNode *sitter.Node, sourceBytes *[]byte) (SymbolSession, error) {
	factory, ok := sessionFactories[lang]
	if !ok {
		return nil, fmt.Errorf("no session factory registered for language: %s", lang)
	}
	return factory(rootNode, sourceBytes)
}
