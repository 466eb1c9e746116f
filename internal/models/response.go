package models

import "time"

type PropertyResponse struct {
	ID        string    `json:"property_id"`
	Title     string    `json:"title"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

type ClientResponse struct {
	ID        string    `json:"client_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

type MediaResponse struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	FileType     string    `json:"file_type"`
	FileURL      string    `json:"file_url"`
	FileName     string    `json:"file_name,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	DisplayOrder int       `json:"display_order"`
	FileSize     int64     `json:"file_size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type MediaListResponse struct {
	Media []MediaResponse `json:"media"`
}

type UploadErrorInfo struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
	Stage    string `json:"stage"`
}

type UploadResponse struct {
	PropertyID string            `json:"property_id"`
	Uploaded   []MediaResponse   `json:"uploaded"`
	Errors     []UploadErrorInfo `json:"errors,omitempty"`
}

type DocumentResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	FileSize     int64     `json:"file_size,omitempty"`
	DocumentType string    `json:"document_type,omitempty"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	UploadDate   time.Time `json:"upload_date"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type DownloadResponse struct {
	URL    string `json:"url"`
	Signed bool   `json:"signed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
