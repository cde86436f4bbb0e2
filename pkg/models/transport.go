package models

// ClassifyRequest is the body accepted by /classify and /classify-with-ocr.
type ClassifyRequest struct {
	Content  string `json:"content" binding:"required"`
	MimeType string `json:"mimeType" binding:"required"`
}

// ClassifyResponse is the body returned by /classify.
type ClassifyResponse struct {
	Classification string             `json:"classification"`
	Confidence     float64            `json:"confidence"`
	Scores         map[string]float64 `json:"scores"`
}

// ClassifyWithOcrResponse is the body returned by /classify-with-ocr.
// Ocr is null when no visual pipeline ran (text-typed input); it is non-null
// with empty fullText when OCR ran but recognized nothing.
type ClassifyWithOcrResponse struct {
	Classification string             `json:"classification"`
	Confidence     float64            `json:"confidence"`
	Scores         map[string]float64 `json:"scores"`
	Ocr            *OcrResult         `json:"ocr"`
}

// HealthResponse is the body returned by /health.
type HealthResponse struct {
	Status          string `json:"status"`
	ModelsLoaded    bool   `json:"models_loaded"`
	ClassifierModel string `json:"classifier_model"`
	OcrModel        string `json:"ocr_model"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
