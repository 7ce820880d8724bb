package assets

// Loader reads one kind of asset from disk.
type Loader interface {
	Load(path string) ([]byte, error)
}
