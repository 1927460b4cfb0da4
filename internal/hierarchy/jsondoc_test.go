package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `{
  "role": "AXApplication", "title": "App",
  "children": [
    {"role": "AXWindow", "title": "Main",
     "children": [
       {"role": "AXButton", "title": "OK", "help": "Confirm"},
       {"role": "AXButton", "title": "Cancel"}
     ]},
    {"role": "AXMenuBar", "gone": true}
  ]
}`

func TestJSONDocProvider(t *testing.T) {
	p, err := NewJSONDocProvider(testDoc)
	require.NoError(t, err)

	t.Run("validate root", func(t *testing.T) {
		ref, err := p.Validate(RootRef)
		require.NoError(t, err)
		assert.Equal(t, RootRef, ref)
	})

	t.Run("root attributes", func(t *testing.T) {
		attrs, err := p.FetchAttributes(RootRef)
		require.NoError(t, err)
		assert.Equal(t, "AXApplication", attrs.Role)
		assert.Equal(t, "App", attrs.Title)
		assert.Equal(t, 2, attrs.ChildCount)
	})

	t.Run("children are dotted index refs", func(t *testing.T) {
		children, err := p.FetchChildren(RootRef)
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, ElementRef("$.0"), children[0])
		assert.Equal(t, ElementRef("$.1"), children[1])
	})

	t.Run("nested attributes", func(t *testing.T) {
		attrs, err := p.FetchAttributes("$.0.0")
		require.NoError(t, err)
		assert.Equal(t, "AXButton", attrs.Role)
		assert.Equal(t, "OK", attrs.Title)
		assert.Equal(t, "Confirm", attrs.Help)
		assert.Equal(t, 0, attrs.ChildCount)
	})

	t.Run("gone element reports destroyed", func(t *testing.T) {
		_, err := p.FetchAttributes("$.1")
		require.Error(t, err)
		assert.True(t, IsGone(err))
	})

	t.Run("out of range index reports destroyed", func(t *testing.T) {
		_, err := p.FetchAttributes("$.7")
		require.Error(t, err)
		assert.True(t, IsGone(err))
	})

	t.Run("malformed ref is not destroyed", func(t *testing.T) {
		_, err := p.FetchAttributes("bogus")
		require.Error(t, err)
		assert.False(t, IsGone(err))
	})
}

func TestJSONDocProviderDestroy(t *testing.T) {
	p, err := NewJSONDocProvider(testDoc)
	require.NoError(t, err)

	jp := p.(*jsonDocProvider)
	jp.Destroy("$.0")

	// The destroyed element and its whole subtree are gone.
	for _, ref := range []ElementRef{"$.0", "$.0.0", "$.0.1"} {
		_, err := p.FetchAttributes(ref)
		assert.True(t, IsGone(err), "ref %s should be gone", ref)
	}

	// The root itself is untouched.
	attrs, err := p.FetchAttributes(RootRef)
	require.NoError(t, err)
	assert.Equal(t, "AXApplication", attrs.Role)
}

func TestSampleDocumentParses(t *testing.T) {
	p, err := NewJSONDocProvider(SampleDocument)
	require.NoError(t, err)

	attrs, err := p.FetchAttributes(RootRef)
	require.NoError(t, err)
	assert.Equal(t, "AXApplication", attrs.Role)
	assert.Equal(t, 2, attrs.ChildCount)
}
