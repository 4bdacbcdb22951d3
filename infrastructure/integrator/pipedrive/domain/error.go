package domain

import "fmt"

// ErrorResponse é o envelope de erro da API do Pipedrive
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorInfo string `json:"error_info"`
}

func (e ErrorResponse) Message() string {
	if e.ErrorInfo != "" {
		return fmt.Sprintf("%s (%s)", e.Error, e.ErrorInfo)
	}
	return e.Error
}
