package namespace

import "github.com/brettbedarf/memns/internal/util"

// Remove deletes the node at path together with everything it owns: the
// whole subtree of a directory and the alternate streams of a main file.
// Removing a missing path is a no-op. The root is never removed.
func (t *Table) Remove(path string) {
	path = NormalizePath(path)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(t.nodes[path])
}

// RemoveNode is [Table.Remove] for a node reference. Nodes that are no
// longer in the table are ignored.
func (t *Table) RemoveNode(node *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(node)
}

func (t *Table) removeLocked(n *Node) {
	if n == nil {
		return
	}
	logger := util.GetLogger("Table.Remove")

	p := n.Path()
	if n == t.root {
		logger.Warn().Msg("Refusing to remove the root")
		return
	}
	// already gone, e.g. a stream reached again through its directory
	if t.nodes[p] != n {
		return
	}
	logger.Debug().Str("path", p).Msg("Removing node")

	delete(t.nodes, p)
	delete(t.children[ParentPath(p)], n)

	if n.isDir {
		// children go first, depth-first, before the bucket itself
		for _, child := range t.listChildrenLocked(p) {
			t.removeLocked(child)
		}
		delete(t.children, p)
	}

	if main := n.MainStream(); main != nil {
		main.unlinkStream(n)
	} else {
		for _, s := range n.Streams() {
			t.removeLocked(s)
			n.unlinkStream(s)
		}
	}
}
