package model

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// MemberKind 成员签名的种类
type MemberKind string

const (
	PropertyMember  MemberKind = "PROPERTY"    // a: string
	MethodMember    MemberKind = "METHOD"      // m(x: number): void
	CallMember      MemberKind = "CALL"        // (x: number): void
	ConstructMember MemberKind = "CONSTRUCT"   // new (x: number): Foo
	IndexMember     MemberKind = "INDEX"       // [key: string]: any
	EnumMember      MemberKind = "ENUM_MEMBER" // A = 1
	TypeMember      MemberKind = "TYPE"        // type T = A | B 的右值
)

// Member 描述一次声明贡献的一个结构签名
type Member struct {
	Kind  MemberKind `json:"Kind"`
	Name  string     `json:"Name,omitempty"`
	Shape string     `json:"Shape"`
}

// Equal 结构相等：两处独立解析出的同一签名必须判定为相等
func (m Member) Equal(o Member) bool {
	return m.Kind == o.Kind && m.Name == o.Name && NormalizeShape(m.Shape) == NormalizeShape(o.Shape)
}

// NormalizeShape 折叠空白并去掉末尾的分隔符
func NormalizeShape(shape string) string {
	s := strings.Join(strings.Fields(shape), " ")
	return strings.TrimRight(s, ";, ")
}

// DeclarationNode 一个具名（或匿名）声明，持有合并后的全部成员签名
type DeclarationNode struct {
	baseNode
	name      string
	anonymous bool
	members   []Member
}

func NewDeclarationNode(raw *sitter.Node, name string, members []Member) *DeclarationNode {
	d := &DeclarationNode{baseNode: newBaseNode(raw), name: name}
	d.MaybeAddMembers(members...)
	return d
}

func NewAnonymousDeclarationNode(raw *sitter.Node, members []Member) *DeclarationNode {
	d := NewDeclarationNode(raw, "", members)
	d.anonymous = true
	return d
}

func (d *DeclarationNode) Kind() NodeKind    { return Declaration }
func (d *DeclarationNode) Name() string      { return d.name }
func (d *DeclarationNode) IsAnonymous() bool { return d.anonymous }

// Members 返回成员副本，顺序为首次出现顺序
func (d *DeclarationNode) Members() []Member {
	return append([]Member(nil), d.members...)
}

// MaybeAddMembers 逐个追加结构上未出现过的成员，返回实际追加的个数
func (d *DeclarationNode) MaybeAddMembers(ms ...Member) int {
	added := 0
	for _, m := range ms {
		if d.hasMember(m) {
			continue
		}
		d.members = append(d.members, m)
		added++
	}
	return added
}

func (d *DeclarationNode) hasMember(m Member) bool {
	for _, existing := range d.members {
		if existing.Equal(m) {
			return true
		}
	}
	return false
}
