package typescript

import (
	"strings"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// MemberExtractor 按声明种类提取结构签名
type MemberExtractor struct {
	src []byte
}

func NewMemberExtractor(sourceBytes *[]byte) core.MemberExtractor {
	e := &MemberExtractor{}
	if sourceBytes != nil {
		e.src = *sourceBytes
	}
	return e
}

func (e *MemberExtractor) Members(raw *sitter.Node) []model.Member {
	if raw == nil {
		return nil
	}

	switch raw.Kind() {
	case kindInterface:
		return e.signatureMembers(raw.ChildByFieldName("body"))
	case kindObjectType:
		return e.signatureMembers(raw)
	case kindTypeAlias:
		value := raw.ChildByFieldName("value")
		if value == nil {
			return nil
		}
		if value.Kind() == kindObjectType {
			return e.signatureMembers(value)
		}
		return []model.Member{{Kind: model.TypeMember, Shape: e.text(value)}}
	case kindClass, kindAbstractClass:
		return e.classMembers(raw.ChildByFieldName("body"))
	case kindEnum:
		return e.enumMembers(raw.ChildByFieldName("body"))
	case kindFunctionSignature, kindFunction:
		return []model.Member{e.callMember(raw)}
	case kindVariableDeclarator:
		shape := strings.TrimSpace(strings.TrimPrefix(e.text(raw.ChildByFieldName("type")), ":"))
		return []model.Member{{Kind: model.PropertyMember, Name: e.text(raw.ChildByFieldName("name")), Shape: shape}}
	}
	return nil
}

// signatureMembers interface 体与对象类型字面量共用
func (e *MemberExtractor) signatureMembers(body *sitter.Node) []model.Member {
	if body == nil {
		return nil
	}

	var members []model.Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child == nil {
			continue
		}

		var kind model.MemberKind
		switch child.Kind() {
		case kindPropertySignature:
			kind = model.PropertyMember
		case kindMethodSignature:
			kind = model.MethodMember
		case kindCallSignature:
			kind = model.CallMember
		case kindConstructSignature:
			kind = model.ConstructMember
		case kindIndexSignature:
			kind = model.IndexMember
		default:
			continue
		}
		members = append(members, e.member(kind, child))
	}
	return members
}

func (e *MemberExtractor) classMembers(body *sitter.Node) []model.Member {
	if body == nil {
		return nil
	}

	var members []model.Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case kindPublicField:
			members = append(members, e.member(model.PropertyMember, child))
		case kindMethodDefinition, kindMethodSignature, kindAbstractMethodSignature:
			members = append(members, e.member(model.MethodMember, child))
		case kindIndexSignature:
			members = append(members, e.member(model.IndexMember, child))
		}
	}
	return members
}

func (e *MemberExtractor) enumMembers(body *sitter.Node) []model.Member {
	if body == nil {
		return nil
	}

	var members []model.Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case kindPropertyIdentifier, kindString:
			members = append(members, model.Member{Kind: model.EnumMember, Name: e.text(child), Shape: e.text(child)})
		case kindEnumAssignment:
			members = append(members, e.member(model.EnumMember, child))
		}
	}
	return members
}

// callMember 形如 <T>(a: T): void
func (e *MemberExtractor) callMember(fn *sitter.Node) model.Member {
	shape := e.text(fn.ChildByFieldName("type_parameters")) +
		e.text(fn.ChildByFieldName("parameters")) +
		e.text(fn.ChildByFieldName("return_type"))
	return model.Member{Kind: model.CallMember, Shape: shape}
}

func (e *MemberExtractor) member(kind model.MemberKind, n *sitter.Node) model.Member {
	return model.Member{
		Kind:  kind,
		Name:  e.text(n.ChildByFieldName("name")),
		Shape: model.NormalizeShape(e.text(n)),
	}
}

func (e *MemberExtractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(e.src)
}
