package dto

import "savoriq/sentiment"

type AnalyzeRequestDTO struct {
	Text string `json:"text" binding:"required" example:"The burger was amazing but the latte was cold."`
}

type AnalyzeResponseDTO struct {
	Classifier string                   `json:"classifier" example:"heuristic"`
	Results    []sentiment.BucketResult `json:"results"`
}
