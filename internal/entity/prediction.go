package entity

type PredictionResult struct {
	Index           int     `json:"index"`
	Label           string  `json:"label"`
	ExtractedNumber int     `json:"extracted_number"`
	Score           float32 `json:"score"`
}

type ClassLabel struct {
	Index           int    `json:"index"`
	Label           string `json:"label"`
	ExtractedNumber int    `json:"extracted_number"`
}
