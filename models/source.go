package models

// FileSource produces the file records a scan will upsert. The local
// filesystem walker is the only implementation; the indirection keeps the
// scan pipeline independent of how records are enumerated.
type FileSource interface {
	Name() string
	Walk() <-chan FileRecord
}
