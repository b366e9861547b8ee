// Package schema adapts the external IDL collaborators: parsing GraphQL SDL
// text into the AST the augmentation engine works over, and printing an
// augmented document back to SDL text.
package schema

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// Parse parses SDL text into a schema document. The name is used in error
// positions only (typically the source file path).
func Parse(name, input string) (*ast.SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	return doc, nil
}

// Print serializes a schema document back to SDL text.
func Print(doc *ast.SchemaDocument) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String()
}
