package store

// Config configures the document store
type Config struct {
	AppName string

	// Dir is the data directory holding all JSON documents
	Dir string
}
