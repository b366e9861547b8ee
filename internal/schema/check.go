package schema

import (
	"fmt"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// Checker verifies that emitted SDL text is well formed. It exists as an
// interface so commands can inject a fake in tests.
type Checker interface {
	Check(sdl string) error
}

// NewChecker returns the default checker, which round-trips the text through
// an independent GraphQL parser.
func NewChecker() Checker {
	return &defaultChecker{}
}

type defaultChecker struct{}

func (c *defaultChecker) Check(sdl string) error {
	doc, report := astparser.ParseGraphqlDocumentString(sdl)
	if report.HasErrors() {
		return fmt.Errorf("emitted schema does not parse: %v", report)
	}

	types := 0
	for i := range doc.RootNodes {
		if doc.RootNodes[i].Kind == ast.NodeKindObjectTypeDefinition {
			types++
		}
	}
	if types == 0 {
		return fmt.Errorf("emitted schema contains no type definitions")
	}
	return nil
}
