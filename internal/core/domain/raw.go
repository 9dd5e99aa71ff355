package domain

// RawDocument is one source file's opaque bytes before parsing.
// It is the filesystem connector's output.
type RawDocument struct {
	// Path is the file's location on disk.
	Path string

	// Content is the raw bytes.
	Content []byte
}
