package recognition

type PredictResponse struct {
	Prediction      string `json:"prediction"`
	ExtractedNumber int    `json:"extracted_number"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}
