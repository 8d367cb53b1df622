package model

// UploadResponse is returned after a successful file upload. OriginalName is
// stripped of any HTML markup before it is echoed back.
type UploadResponse struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
}
