package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms_Find(t *testing.T) {
	terms := NewTerms([]string{"Happy Hour", "beer", " ", "hour", "bee"})

	assert.Len(t, terms.List(0), 4)
	assert.Equal(t, []string{"happy hour", "beer", "hour", "bee"}, terms.Find("happy hour beer, beer again"))
	assert.Equal(t, []string{"bee"}, terms.Find("a bee"))
	assert.Nil(t, terms.Find("nothing here"))
	assert.Nil(t, terms.Find(""))
	assert.Equal(t, 2, terms.Count("beer"))
}

func TestTerms_Empty(t *testing.T) {
	terms := NewTerms(nil)
	assert.Nil(t, terms.Find("anything"))
	assert.Equal(t, 0, terms.Count("anything"))
	assert.Empty(t, terms.List(0))
}

func TestTerms_List(t *testing.T) {
	terms := NewTerms([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b"}, terms.List(2))
	assert.Equal(t, []string{"a", "b", "c"}, terms.List(0))
	assert.Equal(t, []string{"a", "b", "c"}, terms.List(10))

	listed := terms.List(0)
	listed[0] = "z"
	assert.Equal(t, []string{"a"}, terms.List(1))
}
