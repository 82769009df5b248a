package types

// LinkKind identifies the shape of a link entry. It is resolved once
// at parse time; everything downstream is a total switch over this
// closed set.
type LinkKind string

const (
	// KindFile links a single file into the target directory.
	KindFile LinkKind = "file"

	// KindFiles links an ordered list of files; source and target
	// lists must have equal length.
	KindFiles LinkKind = "files"

	// KindDirectory links the source directory itself.
	KindDirectory LinkKind = "directory"
)

// ParseLinkKind maps the raw metadata.type value to a LinkKind.
// The second return is false for anything outside the closed set,
// including the empty string.
func ParseLinkKind(s string) (LinkKind, bool) {
	switch LinkKind(s) {
	case KindFile, KindFiles, KindDirectory:
		return LinkKind(s), true
	default:
		return "", false
	}
}

// IsDirectory reports whether links of this kind point at directories.
func (k LinkKind) IsDirectory() bool {
	return k == KindDirectory
}

// String returns the wire-format name of the kind.
func (k LinkKind) String() string {
	return string(k)
}
