package models

type CreatePropertyRequest struct {
	Title   string `json:"title" binding:"required"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

type CreateClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type ReorderRequest struct {
	MediaIDs []string `json:"media_ids" binding:"required"`
}

type UpdateCaptionRequest struct {
	Caption string `json:"caption"`
}
