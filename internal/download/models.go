package download

// ZipRequest represents the request body for ZIP download
type ZipRequest struct {
	ShareURL  string `json:"share_url"`
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}
