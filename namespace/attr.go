package namespace

import (
	"os"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
	writeBits = 0o222
)

// FuseAttr returns a snapshot of the node as FUSE wire attributes.
// Ino is the node's FileIndex, so streams report their main file's inode.
func (n *Node) FuseAttr() fuse.Attr {
	attr := newDefaultAttr(n.FileIndex())
	if n.isDir {
		attr.Mode = fuse.S_IFDIR | dirPerms
		attr.Nlink = 2 // "." and the entry in its parent
	} else {
		attr.Mode = fuse.S_IFREG | filePerms
	}
	if n.Attributes().IsReadOnly() {
		attr.Mode &^= writeBits
	}
	return attr
}

// newDefaultAttr returns the default attributes for a node
// NOTE: Make sure to set the Mode field appropriately
func newDefaultAttr(ino uint64) fuse.Attr {
	now := time.Now()
	return fuse.Attr{
		Ino:   ino,
		Nlink: 1,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Atime:     uint64(now.Unix()),
		Mtime:     uint64(now.Unix()),
		Ctime:     uint64(now.Unix()),
		Atimensec: uint32(now.Nanosecond()),
		Mtimensec: uint32(now.Nanosecond()),
		Ctimensec: uint32(now.Nanosecond()),
		Blksize:   4096, // preferred size for fs ops
	}
}
