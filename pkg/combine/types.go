package combine

// FileEntry is one file found under the walk root.
type FileEntry struct {
	Path    string // Absolute (or fs-rooted) path used to read the file.
	RelPath string // Slash-separated path relative to the walk root, never "./"-prefixed.
}

// Section is the unit appended to a chunk: a file heading and its normalized body.
type Section struct {
	Index   int    // Position of the file in walk order among accepted files.
	Chunk   int    // Chunk the section belongs to.
	RelPath string // Heading shown above the body.
	Body    string // Normalized file content.
}

// Result summarizes a finished run.
type Result struct {
	Accepted    int      // Files that passed the pattern set.
	Processed   int      // Files whose section was emitted.
	Skipped     int      // Accepted files skipped because they could not be read.
	ChunkCounts []int    // Sections emitted per chunk.
	Artifacts   []string // Artifact paths in chunk order.
}

// Stage tracks where a run is in its lifecycle.
type Stage int

const (
	StageInit Stage = iota
	StageStructureEmitted
	StageProcessing
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageStructureEmitted:
		return "structure-emitted"
	case StageProcessing:
		return "processing"
	case StageFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Sink receives the aggregated content, one chunk index at a time. Calls for
// distinct chunk indices may happen concurrently.
type Sink interface {
	Chunks() int
	AppendPreamble(chunk int, title, body string) error
	AppendSection(chunk int, heading, body string) error
	Finalize(chunk int) (string, error)
}

const (
	// StructureTitle heads the folder-structure preamble of chunk 0.
	StructureTitle = "Project Structure:"

	// progressEvery controls how often progress is logged.
	progressEvery = 10
)
