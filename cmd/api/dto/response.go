package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error  string `json:"error" example:"invalid_review_id"`
	Detail string `json:"detail,omitempty" example:"the provided hex string is not a valid ObjectID"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"review deleted"`
}

type HealthDTO struct {
	Status     string `json:"status" example:"ok"`
	Classifier string `json:"classifier" example:"heuristic"`
}
