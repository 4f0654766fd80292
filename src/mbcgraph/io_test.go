package mbcgraph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGML = `graph [
  node [
    id 0
    label "10"
  ]
  node [
    id 1
    label "20"
  ]
  node [
    id 2
    label "30"
  ]
  edge [
    source 0
    target 1
  ]
  edge [
    source 1
    target 2
  ]
]
`

func TestReadGML(t *testing.T) {
	g, err := ReadGML(strings.NewReader(sampleGML))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, g.Nodes())
	assert.Equal(t, []Edge{{10, 20}, {20, 30}}, g.Edges())
}

func TestReadGMLUnlabeled(t *testing.T) {
	doc := `graph [
  node [
    id 4
  ]
  node [
    id 5
  ]
  edge [
    source 4
    target 5
  ]
]
`
	g, err := ReadGML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, g.Nodes())
	assert.True(t, g.HasEdge(4, 5))
}

func TestReadGMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"node without id", "graph [\n node [\n label \"3\"\n ]\n]"},
		{"bad edge endpoint", "graph [\n node [\n id 0\n ]\n edge [\n source 0\n target x\n ]\n]"},
		{"unknown endpoint", "graph [\n node [\n id 0\n ]\n edge [\n source 0\n target 9\n ]\n]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGML(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestGMLRoundTrip(t *testing.T) {
	g := cycle(5)
	g.AddNode(42)

	var buf strings.Builder
	require.NoError(t, WriteGML(&buf, g))
	back, err := ReadGML(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, g.Nodes(), back.Nodes())
	assert.Equal(t, g.Edges(), back.Edges())
}

func TestReadEdgeList(t *testing.T) {
	doc := "5 4\n0 1\n2 1 weight\n3 0\n4 3\n"
	g, err := ReadEdgeList(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, []Edge{{0, 1}, {0, 3}, {1, 2}, {3, 4}}, g.Edges())
}

func TestReadEdgeListHeaderIsLastToken(t *testing.T) {
	doc := "p edge 3 2\n1 2\n2 3\n"
	g, err := ReadEdgeList(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumEdges())
}

func TestReadEdgeListErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"bad count", "x\n"},
		{"truncated", "3\n0 1\n"},
		{"bad endpoint", "1\n0 z\n"},
		{"single token edge", "1\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdgeList(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestEdgeListRoundTrip(t *testing.T) {
	g := complete(4)
	var buf strings.Builder
	require.NoError(t, WriteEdgeList(&buf, g))
	back, err := ReadEdgeList(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), back.Edges())
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	g := cycle(6)
	require.NoError(t, store.Save("hexagon", g))

	back, err := store.Load("hexagon")
	require.NoError(t, err)
	assert.Equal(t, g.NumNodes(), back.NumNodes())
	assert.Equal(t, g.NumEdges(), back.NumEdges())
	assert.Equal(t, g.Edges(), back.Edges())
}

func TestStoreListAndFilter(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("small-path", path(3)))
	require.NoError(t, store.Save("big-clique", complete(6)))
	require.NoError(t, store.Save("small-cycle", cycle(4)))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"big-clique", "small-cycle", "small-path"}, names)

	graphs, err := store.Graphs(Filter{NamePattern: "^small"})
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, "small-cycle", graphs[0].Name)
	assert.Equal(t, "small-path", graphs[1].Name)

	graphs, err = store.Graphs(Filter{MaxEdges: 4})
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	for _, ng := range graphs {
		assert.LessOrEqual(t, ng.Graph.NumEdges(), 4)
	}

	_, err = store.Graphs(Filter{NamePattern: "("})
	assert.Error(t, err)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveGML(filepath.Join(dir, "g.gml"), path(3)))

	g, err := Load(filepath.Join(dir, "g.gml"))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumEdges())

	_, err = Load(filepath.Join(dir, "g.csv"))
	assert.Error(t, err)
}
