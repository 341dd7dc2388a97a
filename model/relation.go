package model

// --- 输出树关系类型 (Tree Relation Types) ---

// RelationType 是表示节点间关系的字符串常量
type RelationType string

const (
	// Contain 包含: 父节点通过 AddChild 挂载了子节点
	// e.g., [Module("m") -contain-> Declaration("foo1")]
	Contain RelationType = "CONTAIN"
)

// NodeRef 在导出结果中引用一个输出树节点
type NodeRef struct {
	Kind NodeKind `json:"Kind"`
	Name string   `json:"Name,omitempty"`
	Path string   `json:"Path"` // 从文件根到该节点的 key 路径, 例如 "module$m/foo1"
}

// ChildRelation 描述输出树中的一条边
type ChildRelation struct {
	// Type: 关系的类型
	Type RelationType `json:"Type"`

	// Source: 父节点
	Source *NodeRef `json:"Source"`

	// Target: 子节点
	Target *NodeRef `json:"Target"`

	// Key: 子节点在父节点中的 key
	Key string `json:"Key"`

	// Location: 子节点对应的源码位置（无原始节点时为空）
	Location *Location `json:"Location,omitempty"`
}
