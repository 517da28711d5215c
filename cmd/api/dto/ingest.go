package dto

import "encoding/json"

// IngestReviewsRequestDTO 는 플랫폼 원본 리뷰 묶음이다.
// 각 레코드는 플랫폼별 형식 그대로 받아 서비스에서 정규화한다.
type IngestReviewsRequestDTO struct {
	Platform string            `json:"platform" binding:"required" example:"yelp"`
	Reviews  []json.RawMessage `json:"reviews" swaggertype:"array,object"`
}

type IngestOrdersRequestDTO struct {
	Orders []json.RawMessage `json:"orders" swaggertype:"array,object"`
}
