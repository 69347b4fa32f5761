/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: node_test.go
Description: Tests for the document tree: ordered attributes, cloning, traversal,
validation and tag sanitizing.
*/

package tree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kleascm/xmlforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesKeepInsertionOrder(t *testing.T) {
	var attrs tree.Attributes
	attrs.Set("b", "1")
	attrs.Set("a", "2")
	attrs.Set("b", "3")

	assert.Equal(t, 2, attrs.Len())
	assert.Equal(t, []string{"b", "a"}, attrs.Names())

	v, ok := attrs.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = attrs.Get("missing")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	root := tree.New("r")
	root.Attrs.Set("id", "1")
	root.Append(tree.NewLeaf("a", "x"), tree.New("b").Append(tree.NewLeaf("c", "y")))

	clone := root.Clone()
	if diff := cmp.Diff(root, clone, cmp.AllowUnexported(tree.Attributes{})); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}

	clone.Children[1].Children[0].Text = "changed"
	clone.Attrs.Set("id", "2")
	assert.Equal(t, "y", root.Children[1].Children[0].Text)
	v, _ := root.Attrs.Get("id")
	assert.Equal(t, "1", v)
}

func TestWalkAndCount(t *testing.T) {
	root := tree.New("r").Append(
		tree.New("a").Append(tree.NewLeaf("b", "1")),
		tree.NewLeaf("c", "2"),
	)

	var tags []string
	root.Walk(func(n *tree.Node, depth int) bool {
		tags = append(tags, n.Tag)
		return true
	})
	assert.Equal(t, []string{"r", "a", "b", "c"}, tags)
	assert.Equal(t, 4, root.Count())

	tags = nil
	root.Walk(func(n *tree.Node, depth int) bool {
		tags = append(tags, n.Tag)
		return n.Tag != "a"
	})
	assert.Equal(t, []string{"r", "a", "c"}, tags)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, tree.New("r").Append(tree.NewLeaf("a", "1")).Validate())
	assert.Error(t, tree.New("r").Append(tree.NewLeaf("", "1")).Validate())
	assert.Error(t, tree.New("r").Append(tree.NewLeaf("First Name", "1")).Validate())
	assert.Error(t, tree.New("1st").Validate())
	assert.NoError(t, tree.New("a·b").Append(tree.New("〇")).Validate())

	mixed := tree.New("r").Append(tree.NewLeaf("a", "1"))
	mixed.Text = "stray"
	assert.Error(t, mixed.Validate())

	var nilNode *tree.Node
	assert.Error(t, nilNode.Validate())
}

func TestChildByTag(t *testing.T) {
	root := tree.New("r").Append(tree.NewLeaf("a", "1"), tree.NewLeaf("a", "2"))
	require.NotNil(t, root.ChildByTag("a"))
	assert.Equal(t, "1", root.ChildByTag("a").Text)
	assert.Nil(t, root.ChildByTag("z"))
}

func TestSanitizeTag(t *testing.T) {
	cases := map[string]string{
		"First Name": "First_Name",
		"age":        "age",
		"":           "_",
		"1st":        "_1st",
		"a/b":        "a_b",
		"-x":         "_-x",
		"émoji ok":   "émoji_ok",
		"price($)":   "price___",
	}
	for in, want := range cases {
		assert.Equal(t, want, tree.SanitizeTag(in), "input %q", in)
	}

	assert.True(t, tree.IsValidTag("First_Name"))
	assert.False(t, tree.IsValidTag("First Name"))
	assert.False(t, tree.IsValidTag(""))
}
