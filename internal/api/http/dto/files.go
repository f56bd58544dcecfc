package dto

type ScanDirectoryRequest struct {
	Path     string `json:"path" binding:"required"`
	MaxDepth int    `json:"maxDepth"`
}

type UploadFileRequest struct {
	Path string `json:"path" binding:"required"`
	Data []byte `json:"data" binding:"required"`
}

type DistributeCertificateRequest struct {
	Rotate bool `json:"rotate"`
}
