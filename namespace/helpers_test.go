package namespace

import (
	"testing"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/config"
	"github.com/brettbedarf/memns/security"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testRootSDDL = "O:S-1-22-1-1000G:S-1-22-2-1000D:PAI(A;OICI;FA;;;AU)"

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(config.NewDefaultConfig(), &security.StaticSupplier{SDDL: testRootSDDL})
	require.NoError(t, err)
	return table
}

// addDir adds a directory node and fails the test on error
func addDir(t *testing.T, table *Table, path string) *Node {
	t.Helper()
	n := NewNode(path, true, memns.AttrDirectory, nil)
	require.NoError(t, table.Add(n))
	return n
}

// addFile adds a file (or stream, when path has a stream suffix) node
func addFile(t *testing.T, table *Table, path string) *Node {
	t.Helper()
	n := NewNode(path, false, memns.AttrArchive, nil)
	require.NoError(t, table.Add(n))
	return n
}

// paths returns the path of every node in order
func paths(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path())
	}
	return out
}

// treePaths returns every path reachable from the root in walk order
func treePaths(table *Table) []string {
	var out []string
	table.Walk(RootPath, func(n *Node) bool {
		out = append(out, n.Path())
		return true
	})
	return out
}

// requireTree checks the full walk of table and its invariants
func requireTree(t *testing.T, table *Table, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, treePaths(table)); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, table.CheckInvariants())
}
