package namespace

import (
	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/internal/util"
)

// Move renames the node at oldPath to newPath, keeping its identity.
//
// An existing destination is only replaced when replaceIfExisting is set, and
// never when it is read-only or when either side is a directory. Directories
// carry their subtree along and main files carry their alternate streams.
//
// A directory move that fails part way is not rolled back: children already
// moved stay at the new location and the error of the first failing child is
// returned. Callers must treat that subtree as lost rather than retry.
func (t *Table) Move(oldPath, newPath string, replaceIfExisting bool) error {
	oldPath = NormalizePath(oldPath)
	newPath = NormalizePath(newPath)

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.moveLocked(oldPath, newPath, replaceIfExisting)
}

func (t *Table) moveLocked(oldPath, newPath string, replaceIfExisting bool) error {
	logger := util.GetLogger("Table.Move")

	n := t.nodes[oldPath]
	if n == nil {
		return memns.NewError("move", oldPath, memns.ErrNameNotFound)
	}
	if n == t.root {
		return memns.NewError("move", oldPath, memns.ErrAccessDenied)
	}

	dest := t.nodes[newPath]
	if dest != nil {
		if dest == n {
			return nil
		}
		// Cannot move to an existing destination without replace flag
		if !replaceIfExisting {
			return memns.NewError("move", newPath, memns.ErrNameCollision)
		}
		// Cannot replace read only destination
		if dest.Attributes().IsReadOnly() {
			return memns.NewError("move", newPath, memns.ErrAccessDenied)
		}
		// Cannot move a directory or replace a directory
		if n.isDir || dest.isDir {
			return memns.NewError("move", newPath, memns.ErrAccessDenied)
		}
	}

	newParent := ParentPath(newPath)
	if _, ok := t.children[newParent]; !ok {
		logger.Warn().Str("parent", newParent).Str("path", newPath).Msg("No destination directory")
		return memns.NewError("move", newPath, memns.ErrPathNotFound)
	}
	if n.isDir && isWithin(newPath, oldPath) {
		logger.Warn().Str("from", oldPath).Str("to", newPath).Msg("Directory moved into its own subtree")
		return memns.NewError("move", newPath, memns.ErrAccessDenied)
	}
	if err := t.checkStreamMove(n, newPath); err != nil {
		return err
	}

	// Remove destination
	t.removeLocked(dest)

	oldParent := ParentPath(oldPath)
	n.setPath(newPath)
	if err := t.addLocked(n); err != nil {
		// only reachable if the checks above missed a case
		n.setPath(oldPath)
		return err
	}

	if n.isDir {
		// the old bucket stays until every child has been relocated; streams
		// are skipped since they travel with their main file
		for _, child := range t.listChildrenLocked(oldPath) {
			if child.MainStream() != nil {
				continue
			}
			childOld := child.Path()
			childNew := JoinPath(newPath, baseName(childOld))
			if err := t.moveLocked(childOld, childNew, replaceIfExisting); err != nil {
				logger.Warn().Err(err).Str("from", childOld).Str("to", childNew).
					Bool("replaceIfExisting", replaceIfExisting).
					Msg("Child move failed; directory left partially moved")
				return err
			}
		}
		delete(t.children, oldPath)
	}

	if t.nodes[oldPath] == n {
		delete(t.nodes, oldPath)
	}
	if oldParent != newParent {
		delete(t.children[oldParent], n)
	}

	if n.MainStream() == nil {
		for _, s := range n.Streams() {
			sOld := s.Path()
			_, name := SplitStreamName(sOld)
			sNew := StreamPath(newPath, name)
			if err := t.moveLocked(sOld, sNew, replaceIfExisting); err != nil {
				logger.Warn().Err(err).Str("from", sOld).Str("to", sNew).Msg("Alternate stream move failed")
				return err
			}
		}
	}

	logger.Debug().Str("from", oldPath).Str("to", newPath).Msg("Moved node")
	return nil
}

// checkStreamMove rejects renames that would change what kind of object n is:
// a stream stays a stream of the same main file and a main file never
// becomes a stream.
func (t *Table) checkStreamMove(n *Node, newPath string) error {
	_, newStream := SplitStreamName(newPath)
	main := n.MainStream()

	switch {
	case main == nil && newStream == "":
		return nil
	case main == nil || newStream == "":
		return memns.NewError("move", newPath, memns.ErrAccessDenied)
	}

	// the main file may already be relocated as part of a cascade
	if target := t.nodes[mainPathOf(newPath)]; target == nil {
		return memns.NewError("move", newPath, memns.ErrPathNotFound)
	} else if target != main {
		return memns.NewError("move", newPath, memns.ErrAccessDenied)
	}
	return nil
}
