package models

// BlobRef references a blob stored in the blockstore.
type BlobRef struct {
	// Ref is the content address of the blob.
	Ref      string `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
}

// UploadBlobResponse is the output of com.atproto.repo.uploadBlob.
type UploadBlobResponse struct {
	Blob BlobRef `json:"blob"`
}
