package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Remove_File(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	addDir(t, table, "/a")
	addFile(t, table, "/a/keep")
	addFile(t, table, "/a/drop")

	table.Remove("/a/drop")

	assert.Nil(t, table.Find("/a/drop"))
	requireTree(t, table, []string{"/", "/a", "/a/keep"})
}

func TestTable_Remove_MissingIsNoop(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	addDir(t, table, "/a")
	addFile(t, table, "/a/b")
	before := treePaths(table)

	table.Remove("/nope")
	table.Remove("/a/nope")
	table.Remove("/a/b:nostream")

	requireTree(t, table, before)
}

func TestTable_Remove_Twice(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	n := addFile(t, table, "/once")

	table.RemoveNode(n)
	table.RemoveNode(n)
	table.Remove("/once")
	table.RemoveNode(nil)

	requireTree(t, table, []string{"/"})
}

func TestTable_Remove_RootIsKept(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	addFile(t, table, "/child")

	table.Remove(RootPath)
	table.RemoveNode(table.Root())

	requireTree(t, table, []string{"/", "/child"})
}

// Scenario: removing a directory takes every descendant and every stream of
// every descendant with it
func TestTable_Remove_DirectoryCascade(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	addDir(t, table, "/top")
	addDir(t, table, "/top/sub")
	addDir(t, table, "/top/sub/deep")
	addFile(t, table, "/top/f1")
	addFile(t, table, "/top/f1:s1")
	addFile(t, table, "/top/f1:s2")
	addFile(t, table, "/top/sub/f2")
	addFile(t, table, "/top/sub/f2:s")
	addFile(t, table, "/top/sub/deep/f3")
	addFile(t, table, "/top/sub/deep:dirstream")
	addFile(t, table, "/other")
	descendants := treePaths(table)[2:] // past "/" and "/other"
	require.Contains(t, descendants, "/top/sub/deep/f3")

	table.Remove("/top")

	for _, p := range append(descendants, "/top") {
		assert.Nil(t, table.Find(p), "descendant %s still present", p)
		assert.Empty(t, table.ListChildren(p), "bucket for %s still present", p)
	}
	requireTree(t, table, []string{"/", "/other"})
}

func TestTable_Remove_StreamUnlinksFromMain(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	main := addFile(t, table, "/f")
	addFile(t, table, "/f:keep")
	drop := addFile(t, table, "/f:drop")

	table.Remove("/f:drop")

	assert.Nil(t, table.Find("/f:drop"))
	assert.Same(t, main, table.Find("/f"))
	assert.Equal(t, []string{"/f:keep"}, paths(main.Streams()))
	// the removed stream keeps pointing at its former main
	assert.Same(t, main, drop.MainStream())
	requireTree(t, table, []string{"/", "/f", "/f:keep"})
}

func TestTable_Remove_MainTakesStreams(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	main := addFile(t, table, "/f")
	addFile(t, table, "/f:a")
	addFile(t, table, "/f:b")

	table.Remove("/f")

	assert.Nil(t, table.Find("/f:a"))
	assert.Nil(t, table.Find("/f:b"))
	assert.Empty(t, main.Streams())
	requireTree(t, table, []string{"/"})
}

// fileIndex of a removed node is never handed out again, even to a node at
// the same path
func TestTable_Remove_ThenReAdd(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	addDir(t, table, "/d")
	old := addFile(t, table, "/d/f")
	table.Remove("/d")

	addDir(t, table, "/d")
	fresh := addFile(t, table, "/d/f")

	assert.NotEqual(t, old.FileIndex(), fresh.FileIndex())
	requireTree(t, table, []string{"/", "/d", "/d/f"})
}
