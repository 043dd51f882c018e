package models

import "github.com/merute/welcome/internal/toast"

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type ToastResponse struct {
	ID    string      `json:"id,omitempty"`
	Toast toast.Toast `json:"toast"`
}
