package namespace

import (
	"testing"

	"github.com/brettbedarf/memns"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	t.Run("Directory", func(t *testing.T) {
		t.Parallel()
		n := NewNode(`\docs\`, true, memns.AttrHidden, nil)

		assert.Equal(t, "/docs", n.Path())
		assert.Equal(t, "docs", n.Name())
		assert.True(t, n.IsDirectory())
		assert.Equal(t, memns.AttrHidden|memns.AttrDirectory, n.Attributes())
		assert.Zero(t, n.FileIndex())
		assert.False(t, n.IsStream())
		assert.Empty(t, n.Streams())
	})

	t.Run("File", func(t *testing.T) {
		t.Parallel()
		n := NewNode("/docs/a.txt:meta", false, memns.AttrArchive, nil)

		assert.Equal(t, "a.txt:meta", n.Name())
		assert.False(t, n.IsDirectory())
		assert.Equal(t, memns.AttrArchive, n.Attributes())
		// linking only happens when the node is added to a table
		assert.False(t, n.IsStream())
	})
}

func TestNode_SetAttributes(t *testing.T) {
	t.Parallel()

	dir := NewNode("/d", true, 0, nil)
	dir.SetAttributes(memns.AttrReadOnly)
	assert.Equal(t, memns.AttrReadOnly|memns.AttrDirectory, dir.Attributes())

	file := NewNode("/f", false, memns.AttrArchive, nil)
	file.SetAttributes(memns.AttrReadOnly)
	assert.True(t, file.Attributes().IsReadOnly())
	assert.False(t, file.Attributes().Has(memns.AttrArchive))
}

func TestNode_SecurityDescriptorIsCopied(t *testing.T) {
	t.Parallel()

	blob := []byte("O:BA")
	n := NewNode("/f", false, 0, blob)
	blob[0] = 'X'
	assert.Equal(t, []byte("O:BA"), n.SecurityDescriptor())

	got := n.SecurityDescriptor()
	got[0] = 'Y'
	assert.Equal(t, []byte("O:BA"), n.SecurityDescriptor())

	n.SetSecurityDescriptor([]byte("O:SY"))
	assert.Equal(t, []byte("O:SY"), n.SecurityDescriptor())
}

func TestNode_FuseAttr(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	dir := addDir(t, table, "/d")
	file := addFile(t, table, "/d/f")
	stream := addFile(t, table, "/d/f:s")
	ro := NewNode("/d/ro", false, memns.AttrReadOnly, nil)
	assert.NoError(t, table.Add(ro))

	t.Run("Root", func(t *testing.T) {
		t.Parallel()
		attr := table.Root().FuseAttr()
		assert.Equal(t, uint64(fuse.FUSE_ROOT_ID), attr.Ino)
		assert.Equal(t, uint32(fuse.S_IFDIR|0o755), attr.Mode)
	})

	t.Run("Directory", func(t *testing.T) {
		t.Parallel()
		attr := dir.FuseAttr()
		assert.Equal(t, dir.FileIndex(), attr.Ino)
		assert.Equal(t, uint32(fuse.S_IFDIR|0o755), attr.Mode)
		assert.Equal(t, uint32(2), attr.Nlink)
	})

	t.Run("File", func(t *testing.T) {
		t.Parallel()
		attr := file.FuseAttr()
		assert.Equal(t, file.FileIndex(), attr.Ino)
		assert.Equal(t, uint32(fuse.S_IFREG|0o644), attr.Mode)
		assert.Equal(t, uint32(1), attr.Nlink)
	})

	t.Run("StreamSharesInode", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, file.FuseAttr().Ino, stream.FuseAttr().Ino)
	})

	t.Run("ReadOnly", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, uint32(fuse.S_IFREG|0o444), ro.FuseAttr().Mode)
	})
}
