package graph

// TypeName names an object type of the boundary graph.
type TypeName string

// Object types exposed at the boundary.
const (
	TypeUser    TypeName = "User"
	TypePost    TypeName = "Post"
	TypeComment TypeName = "Comment"
)

// fieldDef describes one field; target is set for relational fields.
type fieldDef struct {
	target TypeName
}

func (f fieldDef) relational() bool { return f.target != "" }

var schema = map[TypeName]map[string]fieldDef{
	TypeUser: {
		"id":       {},
		"name":     {},
		"email":    {},
		"age":      {},
		"posts":    {target: TypePost},
		"comments": {target: TypeComment},
	},
	TypePost: {
		"id":        {},
		"title":     {},
		"body":      {},
		"published": {},
		"author":    {target: TypeUser},
		"comments":  {target: TypeComment},
	},
	TypeComment: {
		"id":     {},
		"text":   {},
		"author": {target: TypeUser},
		"post":   {target: TypePost},
	},
}

// scalarFields lists each type's scalar fields in declaration order. It is
// the selection used when a caller names an object without subfields.
var scalarFields = map[TypeName][]string{
	TypeUser:    {"id", "name", "email", "age"},
	TypePost:    {"id", "title", "body", "published"},
	TypeComment: {"id", "text"},
}

func defaultSelection(t TypeName) Selection {
	names := scalarFields[t]
	sel := make(Selection, 0, len(names))
	for _, name := range names {
		sel = append(sel, Field{Name: name})
	}
	return sel
}
