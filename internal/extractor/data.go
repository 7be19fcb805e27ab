package extractor

// ExtractionResult holds the links found on one page, resolved against the
// base URL and in document order. Duplicates are kept.
type ExtractionResult struct {
	Links []string
}
