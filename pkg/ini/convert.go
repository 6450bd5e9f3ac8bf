package ini

import (
	"fmt"
	"sort"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ToAST converts the document to Shape's unified AST.
//
// The result is an *ast.ObjectNode with one *ast.ObjectNode per section,
// each holding one string *ast.LiteralNode per key. Comments and formatting
// are dropped, and the first occurrence of a duplicate section or key wins,
// as in ToObject.
//
// Example:
//
//	doc, _ := ini.Parse("[server]\nport=80\n")
//	node := ini.ToAST(doc)
//	server, _ := node.(*ast.ObjectNode).GetProperty("server")
//	port, _ := server.(*ast.ObjectNode).GetProperty("port")
//	port.(*ast.LiteralNode).Value() // "80"
func ToAST(doc *Document) ast.SchemaNode {
	pos := ast.Position{}

	obj := doc.ToObject()
	sections := make(map[string]ast.SchemaNode, len(obj))
	for name, entries := range obj {
		props := make(map[string]ast.SchemaNode, len(entries))
		for key, value := range entries {
			props[key] = ast.NewLiteralNode(value, pos)
		}
		sections[name] = ast.NewObjectNode(props, pos)
	}
	return ast.NewObjectNode(sections, pos)
}

// FromAST builds a canonically formatted document from an AST of the shape
// ToAST produces. Sections and keys are written in sorted order, since
// object properties carry no order.
//
// Every section must be an *ast.ObjectNode and every value a string
// *ast.LiteralNode; other literal types are rejected rather than converted.
func FromAST(node ast.SchemaNode) (*Document, error) {
	root, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("ini: FromAST: root is %T, want *ast.ObjectNode", node)
	}

	b := NewBuilder()
	props := root.Properties()
	for i, name := range sortedNames(props) {
		section, ok := props[name].(*ast.ObjectNode)
		if !ok {
			return nil, fmt.Errorf("ini: FromAST: section %q is %T, want *ast.ObjectNode", name, props[name])
		}
		if i > 0 {
			b.Blank()
		}
		b.Section(name)

		entries := section.Properties()
		for _, key := range sortedNames(entries) {
			lit, ok := entries[key].(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("ini: FromAST: [%s] %s is %T, want *ast.LiteralNode", name, key, entries[key])
			}
			value, ok := lit.Value().(string)
			if !ok {
				return nil, fmt.Errorf("ini: FromAST: [%s] %s is %T, want string", name, key, lit.Value())
			}
			b.Set(key, value)
		}
	}
	return b.Build()
}

// ReleaseTree recursively releases all nodes in an AST tree back to their pools.
// Call it when done with the result of ToAST.
func ReleaseTree(node ast.SchemaNode) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.LiteralNode:
		ast.ReleaseLiteralNode(n)

	case *ast.ObjectNode:
		// Release children first
		for _, child := range n.Properties() {
			ReleaseTree(child)
		}
		ast.ReleaseObjectNode(n)
	}
}

func sortedNames(props map[string]ast.SchemaNode) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
