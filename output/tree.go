package output

import (
	"strings"

	"github.com/CodMac/dts-flow/model"
)

// NodeRecord 输出树中一个节点的导出形式
type NodeRecord struct {
	RunID     string          `json:"RunID"`
	File      string          `json:"File"`
	Path      string          `json:"Path"`
	Kind      model.NodeKind  `json:"Kind"`
	Name      string          `json:"Name,omitempty"`
	Anonymous bool            `json:"Anonymous,omitempty"`
	Members   []model.Member  `json:"Members,omitempty"`
	Location  *model.Location `json:"Location,omitempty"`
}

// Flatten 深度优先展开一棵输出树。
// 合并后的声明可能挂在多个位置，每个位置各产生一条记录。
// 已在当前路径上的节点不再展开，输出树即使成环也能结束。
func Flatten(runID, file string, root model.Node) ([]*NodeRecord, []*model.ChildRelation) {
	var records []*NodeRecord
	var rels []*model.ChildRelation
	onPath := make(map[model.Node]bool)

	var visit func(n model.Node, path string)
	visit = func(n model.Node, path string) {
		records = append(records, newRecord(runID, file, path, n))
		onPath[n] = true
		defer delete(onPath, n)

		parentRef := &model.NodeRef{Kind: n.Kind(), Name: n.Name(), Path: path}
		for _, child := range n.Children() {
			if onPath[child.Node] {
				continue
			}
			childPath := joinPath(path, child.Key)
			loc := child.Node.Location()
			if loc != nil {
				loc.FilePath = file
			}
			rels = append(rels, &model.ChildRelation{
				Type:     model.Contain,
				Source:   parentRef,
				Target:   &model.NodeRef{Kind: child.Node.Kind(), Name: child.Node.Name(), Path: childPath},
				Key:      child.Key,
				Location: loc,
			})
			visit(child.Node, childPath)
		}
	}
	visit(root, "")

	return records, rels
}

func newRecord(runID, file, path string, n model.Node) *NodeRecord {
	rec := &NodeRecord{
		RunID:    runID,
		File:     file,
		Path:     path,
		Kind:     n.Kind(),
		Name:     n.Name(),
		Location: n.Location(),
	}
	if rec.Location != nil {
		rec.Location.FilePath = file
	}
	if decl, ok := n.(*model.DeclarationNode); ok {
		rec.Anonymous = decl.IsAnonymous()
		rec.Members = decl.Members()
	}
	return rec
}

// 路径以 "/" 分隔各级 key；key 本身的 "%" 与 "/" 被转义 (declare module "lodash/fp")
var (
	keyEscaper   = strings.NewReplacer("%", "%25", "/", "%2F")
	keyUnescaper = strings.NewReplacer("%2F", "/", "%25", "%")
)

func joinPath(parent, key string) string {
	if parent == "" {
		return keyEscaper.Replace(key)
	}
	return parent + "/" + keyEscaper.Replace(key)
}

// SplitPath 把记录路径还原为各级 key，根节点返回 nil
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	keys := strings.Split(path, "/")
	for i, k := range keys {
		keys[i] = keyUnescaper.Replace(k)
	}
	return keys
}
