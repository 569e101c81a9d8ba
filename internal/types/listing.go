package types

// Listing holds the classified links extracted from one directory page.
// All URLs are absolute and normalized.
type Listing struct {
	Directories []string
	Targets     []string
}
