package combine

// ChunkIndex returns the chunk that the i-th accepted file (0-based, walk
// order) belongs to: strict round robin over n chunks.
func ChunkIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	return i % n
}

// Allocate distributes files over n chunks in round-robin order, keeping walk
// order within each chunk. Chunk sizes differ by at most one.
func Allocate(files []FileEntry, n int) [][]FileEntry {
	if n < 1 {
		n = 1
	}
	chunks := make([][]FileEntry, n)
	for c := range chunks {
		chunks[c] = make([]FileEntry, 0, (len(files)+n-1)/n)
	}
	for i, f := range files {
		c := ChunkIndex(i, n)
		chunks[c] = append(chunks[c], f)
	}
	return chunks
}
