package models

import (
	"io"
	"time"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Analysis is the stored history entry for one analyze request. It never
// holds the uploaded PDF or its text.
type Analysis struct {
	ID         string    `json:"id" db:"id"`
	Filename   string    `json:"filename" db:"filename"`
	Query      string    `json:"query" db:"query"`
	Status     string    `json:"status" db:"status"`
	Result     *string   `json:"analysis,omitempty" db:"analysis"`
	Error      *string   `json:"error,omitempty" db:"error"`
	PageCount  int       `json:"page_count" db:"page_count"`
	ArchiveKey *string   `json:"archive_key,omitempty" db:"archive_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type AnalyzeRequest struct {
	File        io.Reader
	Filename    string
	ContentType string
	Query       string
}

type AnalyzeResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Query         string `json:"query"`
	Analysis      string `json:"analysis"`
	FileProcessed string `json:"file_processed"`
}
