package attachment

// FileDescriptor is the subset of a Slack file object the download pipeline
// needs. It is supplied by the event layer and never mutated here.
type FileDescriptor struct {
	Name               string `json:"name"`
	Mimetype           string `json:"mimetype"`
	Size               int64  `json:"size"`
	URLPrivateDownload string `json:"url_private_download"`
	URLPrivate         string `json:"url_private"`
}

// ProcessedFile is the record produced by a successful download. Records are
// write-once: the downloader fills every field and nothing mutates them
// afterwards. TempPath points at the spooled bytes on disk; an empty TempPath
// means there is nothing for cleanup to remove.
type ProcessedFile struct {
	Path     string
	Name     string
	Mimetype string
	IsImage  bool
	IsText   bool
	Size     int64
	TempPath string
}
