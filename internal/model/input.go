package model

// FileUpload is an uploaded document, fully read from the request body.
type FileUpload struct {
	Filename string
	Data     []byte
}

// Input carries the raw material of one triage request. At most one of the
// two variants is used: when File is set it always wins over Text.
type Input struct {
	Text string
	File *FileUpload
}

// HasFile reports whether a file variant is present.
func (in Input) HasFile() bool {
	return in.File != nil
}
