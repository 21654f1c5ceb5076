// File: pkg/combine/tree.go
package combine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PathType selects how entries are named in the structure map.
type PathType string

const (
	PathRelative PathType = "relative"
	PathAbsolute PathType = "absolute"
)

// TreeOptions controls RenderTree output.
type TreeOptions struct {
	PathType PathType
	// DisplayRoot replaces the walk root in absolute mode, so a temporary
	// checkout can be shown under its original location.
	DisplayRoot string
}

// treeNode is a directory entry in the structure map.
type treeNode struct {
	name     string
	path     string
	display  string
	isDir    bool
	children []*treeNode
}

// RenderTree renders the full physical tree under root, ignoring any pattern
// set. Directories come first, then files, each group sorted by name;
// directory names carry a trailing slash.
func RenderTree(fsys afero.Fs, root string, opts TreeOptions, logger *zap.Logger) (string, error) {
	logger = orNop(logger)

	info, err := fsys.Stat(root)
	if err != nil {
		return "", fmt.Errorf("cannot access tree root %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("tree root %s is not a directory", root)
	}

	rootNode := &treeNode{name: info.Name(), path: root, display: opts.DisplayRoot, isDir: true}
	buildTree(fsys, rootNode, opts, logger)

	var sb strings.Builder
	writeTree(&sb, rootNode.children, "", opts)
	return sb.String(), nil
}

func buildTree(fsys afero.Fs, node *treeNode, opts TreeOptions, logger *zap.Logger) {
	entries, err := afero.ReadDir(fsys, node.path)
	if err != nil {
		logger.Warn("Failed to read directory for tree structure", zap.String("directory", node.path), zap.Error(err))
		return
	}
	sortEntries(entries)

	for _, entry := range entries {
		child := &treeNode{
			name:  entry.Name(),
			path:  filepath.Join(node.path, entry.Name()),
			isDir: entry.IsDir(),
		}
		if node.display != "" {
			child.display = strings.TrimRight(node.display, "/") + "/" + entry.Name()
		}
		if child.isDir {
			buildTree(fsys, child, opts, logger)
		}
		node.children = append(node.children, child)
	}
}

func writeTree(sb *strings.Builder, nodes []*treeNode, prefix string, opts TreeOptions) {
	for i, n := range nodes {
		connector := "├── "
		extension := "│   "
		if i == len(nodes)-1 {
			connector = "└── "
			extension = "    "
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(n.label(opts))
		if n.isDir {
			sb.WriteString("/\n")
			writeTree(sb, n.children, prefix+extension, opts)
			continue
		}
		sb.WriteString("\n")
	}
}

func (n *treeNode) label(opts TreeOptions) string {
	if opts.PathType != PathAbsolute {
		return n.name
	}
	if n.display != "" {
		return n.display
	}
	return n.path
}
