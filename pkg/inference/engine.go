/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Schema inference engine. Walks a document tree bottom-up and folds every
child into a per-tag accumulator, so repeated siblings are merged once and never
re-derived. Merge policy: attribute types last-write-wins, children merged
recursively, and child structure wins over leaf text for mixed tags.
*/

package inference

import (
	"fmt"
	"strings"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/tree"
)

// Engine infers schema models from document trees
type Engine struct{}

// NewEngine creates a new inference engine
func NewEngine() *Engine {
	return &Engine{}
}

// Infer builds the schema model for the tree rooted at root
func (e *Engine) Infer(root *tree.Node) (*Model, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", interfaces.ErrSchemaInference)
	}
	model := NewModel(root.Tag)
	if err := e.fold(model, root, 0); err != nil {
		return nil, err
	}
	return model, nil
}

// fold merges one occurrence of a tag into its accumulator
func (e *Engine) fold(acc *Model, node *tree.Node, depth int) error {
	if node.Tag == "" {
		return fmt.Errorf("%w: empty tag at depth %d", interfaces.ErrSchemaInference, depth)
	}
	if node.Tag != acc.Tag {
		return fmt.Errorf("%w: cannot merge %q into %q", interfaces.ErrSchemaInference, node.Tag, acc.Tag)
	}
	acc.Count++

	for _, attr := range node.Attrs.List() {
		acc.setAttribute(attr.Name, Classify(attr.Value))
	}

	for _, child := range node.Children {
		childAcc := acc.Child(child.Tag)
		if childAcc == nil {
			childAcc = NewModel(child.Tag)
			acc.addChild(childAcc)
		}
		if err := e.fold(childAcc, child, depth+1); err != nil {
			return err
		}
	}

	if len(node.Children) == 0 {
		if text := strings.TrimSpace(node.Text); text != "" {
			acc.LeafType = Classify(text)
			acc.HasLeaf = true
		}
	}

	if len(acc.Children) > 0 && acc.HasLeaf {
		acc.HasLeaf = false
		acc.LeafType = String
		acc.Mixed = true
	}
	return nil
}
