package metadomain

type ImageEntry struct {
	Hash string `json:"hash"`
	URL  string `json:"url,omitempty"`
}

// ImageUploadResponse é o formato {images: {<nome>: {hash}}} retornado pelo endpoint adimages
type ImageUploadResponse struct {
	Images map[string]ImageEntry `json:"images"`
}
