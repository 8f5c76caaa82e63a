package decl

// Member is one of *Field, *Method or *EnumConstant.
type Member interface {
	MemberName() string
	Owner() *TypeDecl
	Line() uint32
	member()
}

// PropertyMarker records that a field asked for a declared property.
// Directive is the raw attribute string; HasDirective is false for a bare marker.
type PropertyMarker struct {
	Directive    string
	HasDirective bool
}

type Field struct {
	Name       string
	Type       TypeRef
	Visibility Visibility
	Static     bool
	Final      bool
	// Constant holds the literal initializer of a compile-time constant.
	Constant    string
	HasConstant bool
	Property    *PropertyMarker
	Ownership   Ownership
	LineNo      uint32

	owner *TypeDecl
}

func (f *Field) MemberName() string { return f.Name }
func (f *Field) Owner() *TypeDecl   { return f.owner }
func (f *Field) Line() uint32       { return f.LineNo }
func (*Field) member()              {}

type Param struct {
	Name string
	Type TypeRef
}

type Method struct {
	Name         string
	Params       []Param
	Return       TypeRef
	Visibility   Visibility
	Static       bool
	Abstract     bool
	Synchronized bool
	Constructor  bool
	LineNo       uint32

	owner *TypeDecl
}

func (m *Method) MemberName() string { return m.Name }
func (m *Method) Owner() *TypeDecl   { return m.owner }
func (m *Method) Line() uint32       { return m.LineNo }
func (*Method) member()              {}

type EnumConstant struct {
	Name   string
	LineNo uint32

	ordinal uint32
	owner   *TypeDecl
}

func (c *EnumConstant) MemberName() string { return c.Name }
func (c *EnumConstant) Owner() *TypeDecl   { return c.owner }
func (c *EnumConstant) Line() uint32       { return c.LineNo }
func (c *EnumConstant) Ordinal() uint32    { return c.ordinal }
func (*EnumConstant) member()              {}
