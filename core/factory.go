package core

import (
	"strconv"

	"github.com/CodMac/dts-flow/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Factory 一次翻译运行的全部注册表。每个运行独占一个实例，不可跨 goroutine 共享。
//
// 源类型系统允许对同一个 interface/type 多次声明（结构合并、重载），
// 目标类型系统往往不行：同一限定名的所有出现必须折叠成一个节点，携带所有观察到的成员签名。
type Factory struct {
	extractor MemberExtractor
	session   SymbolSession

	modules           map[string]*model.ModuleNode
	declarations      map[string]*model.DeclarationNode
	declarationOrder  []string
	functionOverloads map[string]int
}

// Stats 注册表规模
type Stats struct {
	Modules      int
	Declarations int
	Functions    int // RegisterFunctionDeclaration 创建的节点总数
}

// NewFactory extractor 为 nil 时合并不追加任何成员；session 为 nil 时命名空间内退化为原名
func NewFactory(extractor MemberExtractor, session SymbolSession) *Factory {
	return &Factory{
		extractor:         extractor,
		session:           session,
		modules:           make(map[string]*model.ModuleNode),
		declarations:      make(map[string]*model.DeclarationNode),
		functionOverloads: make(map[string]int),
	}
}

// Session 返回本次运行的符号解析会话（可能为 nil）
func (f *Factory) Session() SymbolSession { return f.session }

// GetOrCreateModule 同名模块多次声明时返回同一个实例
func (f *Factory) GetOrCreateModule(name string) *model.ModuleNode {
	if m, ok := f.modules[name]; ok {
		return m
	}
	m := model.NewModuleNode(name)
	f.modules[name] = m
	return m
}

// CreateAnonymousDeclaration 匿名声明：不注册，也不与任何声明合并
func (f *Factory) CreateAnonymousDeclaration(raw *sitter.Node) *model.DeclarationNode {
	return model.NewAnonymousDeclarationNode(raw, f.members(raw))
}

// GetOrCreateDeclaration 按限定名合并声明
func (f *Factory) GetOrCreateDeclaration(raw *sitter.Node, name string, scope Scope) *model.DeclarationNode {
	qn := ResolveQualifiedName(raw, name, scope)

	if existing, ok := f.declarations[qn]; ok {
		existing.MaybeAddMembers(f.members(raw)...)
		return existing
	}

	decl := model.NewDeclarationNode(raw, name, f.members(raw))
	f.declarations[qn] = decl
	f.declarationOrder = append(f.declarationOrder, qn)
	return decl
}

// RegisterFunctionDeclaration 函数重载在目标系统中只能作为独立命名的绑定输出，
// 所以每次调用都新建节点，挂到 ctx 的 name+序号 下。序号从 1 开始，且在整个运行内只增不减。
func (f *Factory) RegisterFunctionDeclaration(raw *sitter.Node, name string, ctx model.Node) {
	f.functionOverloads[name]++
	decl := model.NewDeclarationNode(raw, name, f.members(raw))
	ctx.AddChild(name+strconv.Itoa(f.functionOverloads[name]), decl)
}

// CreateNamespace 每次新建，命名空间不参与合并
func (f *Factory) CreateNamespace(name string) *model.NamespaceNode {
	return model.NewNamespaceNode(name)
}

// CreateImport 包装 import 语句
func (f *Factory) CreateImport(raw *sitter.Node) *model.ImportNode {
	return model.NewImportNode(raw)
}

// CreateExport 包装不带声明的 export 语句
func (f *Factory) CreateExport(raw *sitter.Node) *model.ExportNode {
	return model.NewExportNode(raw)
}

// CreateExportDeclaration 包装带声明的 export 语句
func (f *Factory) CreateExportDeclaration(raw *sitter.Node) *model.ExportDeclarationNode {
	return model.NewExportDeclarationNode(raw)
}

// QualifiedDeclaration 注册表中的一项
type QualifiedDeclaration struct {
	QualifiedName string
	Node          *model.DeclarationNode
}

// Declarations 按首次注册顺序返回已注册的声明
func (f *Factory) Declarations() []QualifiedDeclaration {
	result := make([]QualifiedDeclaration, 0, len(f.declarationOrder))
	for _, qn := range f.declarationOrder {
		result = append(result, QualifiedDeclaration{QualifiedName: qn, Node: f.declarations[qn]})
	}
	return result
}

// Stats 返回当前注册表规模
func (f *Factory) Stats() Stats {
	s := Stats{Modules: len(f.modules), Declarations: len(f.declarations)}
	for _, n := range f.functionOverloads {
		s.Functions += n
	}
	return s
}

func (f *Factory) members(raw *sitter.Node) []model.Member {
	if f.extractor == nil {
		return nil
	}
	return f.extractor.Members(raw)
}
