package model

// UploadedFile describes a file a respondent attached to a response.
type UploadedFile struct {
	Key              string `json:"key"`
	FileName         string `json:"fileName"`
	OriginalFileName string `json:"originalFileName"`
	Size             int64  `json:"size"`
	ContentType      string `json:"contentType"`
	URL              string `json:"url"`
}
