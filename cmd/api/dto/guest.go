package dto

type CreateGuestRequestDTO struct {
	Name  string  `json:"name" binding:"required" example:"Dana Reyes"`
	Email *string `json:"email" example:"dana@example.com"`
	Phone *string `json:"phone" example:"+1-555-0100"`
	// Tier 는 new / regular / vip. 비어 있으면 new.
	Tier string `json:"tier" example:"new"`
}
