package core

import (
	"net/http"
	"time"
)

// swagger:model
type ResponseData struct {
	Status  int         `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Paging  *Paging     `json:"paging,omitempty"`
}

// swagger:model
type Model struct {
	ID        uint       `json:"id" gorm:"primary_key"`
	CreatedAt time.Time  `json:"-" `
	UpdatedAt time.Time  `json:"-" `
	DeletedAt *time.Time `json:"-" sql:"index"`
}

type Paging struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
	TotalPage  int `json:"total_page"`
	Offset     int `json:"offset"` // Helper
	Limit      int `json:"limit"`  // Helper
}

type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

type Bundle interface {
	GetRoutes() []Route
}

// SystemLog rows are written by the request middleware in main.go
type SystemLog struct {
	Model
	LogType  uint      `json:"log_type"`
	LogDate  time.Time `json:"log_date"`
	LogTitle string    `json:"log_title"`
	LogText  string    `json:"log_text"`
}

func (SystemLog) TableName() string {
	return "system_log"
}

// swagger:model
type HandleErrorData struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}
