package typescript

// tree-sitter-typescript 节点类型
const (
	kindAmbient            = "ambient_declaration"
	kindStatementBlock     = "statement_block"
	kindModule             = "module"
	kindInternalModule     = "internal_module"
	kindExpressionStmt     = "expression_statement"
	kindError              = "ERROR"
	kindInterface          = "interface_declaration"
	kindTypeAlias          = "type_alias_declaration"
	kindClass              = "class_declaration"
	kindAbstractClass      = "abstract_class_declaration"
	kindEnum               = "enum_declaration"
	kindFunctionSignature  = "function_signature"
	kindFunction           = "function_declaration"
	kindLexical            = "lexical_declaration"
	kindVariable           = "variable_declaration"
	kindVariableDeclarator = "variable_declarator"
	kindImport             = "import_statement"
	kindImportAlias        = "import_alias"
	kindExport             = "export_statement"

	kindString     = "string"
	kindObjectType = "object_type"

	kindPropertySignature       = "property_signature"
	kindMethodSignature         = "method_signature"
	kindCallSignature           = "call_signature"
	kindConstructSignature      = "construct_signature"
	kindIndexSignature          = "index_signature"
	kindPublicField             = "public_field_definition"
	kindMethodDefinition        = "method_definition"
	kindAbstractMethodSignature = "abstract_method_signature"
	kindEnumAssignment          = "enum_assignment"
	kindPropertyIdentifier      = "property_identifier"
)

// 输出树中非声明子节点的 key 前缀
const (
	keyModulePrefix    = "module$"
	keyNamespacePrefix = "namespace$"
	keyImportPrefix    = "import$"
	keyExportPrefix    = "export$"
	keyAnonymousPrefix = "$anon"
)

// DeclarationQuery 捕获所有声明的名称节点，供符号会话建立索引。
// 约定：@name 为声明名，@decl 为声明本身。
const DeclarationQuery = `
[
  (interface_declaration name: (_) @name) @decl
  (type_alias_declaration name: (_) @name) @decl
  (class_declaration name: (_) @name) @decl
  (abstract_class_declaration name: (_) @name) @decl
  (enum_declaration name: (_) @name) @decl
  (function_signature name: (_) @name) @decl
  (function_declaration name: (_) @name) @decl
  (variable_declarator name: (identifier) @name) @decl
  (module name: (_) @name) @decl
  (internal_module name: (_) @name) @decl
]
`
