package response

import "github.com/gin-gonic/gin"

// The wire contract is deliberately small: success payloads are whatever the
// endpoint documents, error bodies are always {"message": "..."} with the
// HTTP status carrying the category.

// JSON writes an arbitrary success payload.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Err writes the uniform error body.
func Err(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// AbortErr writes the error body and stops the handler chain (middleware use).
func AbortErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// Page is the list envelope shared by the directory and CRUD listings.
type Page struct {
	Data       any `json:"data"`
	Total      int `json:"total"`
	PageNum    int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Paginated writes a list page with derived totalPages.
func Paginated(c *gin.Context, status int, data any, total, page, limit int) {
	tp := 0
	if limit > 0 {
		tp = (total + limit - 1) / limit
	}
	c.JSON(status, Page{Data: data, Total: total, PageNum: page, Limit: limit, TotalPages: tp})
}
