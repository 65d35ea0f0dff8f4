package namespace

import (
	"path"
	"strings"
)

const (
	// RootPath is the well-known path of the namespace root
	RootPath = "/"

	// StreamSeparator splits a leaf name into its base and alternate stream name
	StreamSeparator = ":"
)

// NormalizePath converts backslashes to slashes, cleans the path and makes it
// absolute. "" and "." normalize to [RootPath].
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// ParentPath returns p with its final path component removed.
// The parent of the root is the root itself.
func ParentPath(p string) string {
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return RootPath
	}
	return p[:i]
}

// baseName returns the final path component of p, including any stream suffix
func baseName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// SplitStreamName splits the final component of p at the first
// [StreamSeparator]. An empty stream name means the primary data stream.
//
//	SplitStreamName("/a/foo")       // "foo", ""
//	SplitStreamName("/a/foo:bar")   // "foo", "bar"
//	SplitStreamName("/a/foo:bar:x") // "foo", "bar:x"
func SplitStreamName(p string) (base, stream string) {
	leaf := baseName(p)
	base, stream, _ = strings.Cut(leaf, StreamSeparator)
	return base, stream
}

// JoinPath appends name to the directory dir
func JoinPath(dir, name string) string {
	if dir == RootPath {
		return RootPath + name
	}
	return dir + "/" + name
}

// StreamPath returns the path of the alternate stream named stream on the
// main file at mainPath
func StreamPath(mainPath, stream string) string {
	return mainPath + StreamSeparator + stream
}

// mainPathOf returns the main file path for a stream path, or p when p is
// not a stream
func mainPathOf(p string) string {
	base, stream := SplitStreamName(p)
	if stream == "" {
		return p
	}
	return JoinPath(ParentPath(p), base)
}

// isWithin reports whether p is strictly below dir
func isWithin(p, dir string) bool {
	if dir == RootPath {
		return p != RootPath
	}
	return strings.HasPrefix(p, dir+"/")
}
