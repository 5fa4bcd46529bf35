package aepx

// ScanOptions holds configuration for a project scan.
type ScanOptions struct {
	// Candidate collection
	rules []Rule // nil means DefaultRules

	// Path handling
	normalizeUnicode bool // apply NFC normalization before resolution
}

// defaultOptions returns the default scan options.
func defaultOptions() ScanOptions {
	return ScanOptions{
		rules:            nil,
		normalizeUnicode: false,
	}
}

// clone creates a deep copy of ScanOptions.
func (o ScanOptions) clone() ScanOptions {
	newOpts := ScanOptions{
		normalizeUnicode: o.normalizeUnicode,
	}

	// Deep copy rules slice
	if o.rules != nil {
		newOpts.rules = make([]Rule, len(o.rules))
		copy(newOpts.rules, o.rules)
	}

	return newOpts
}
