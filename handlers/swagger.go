package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers Swagger/OpenAPI endpoints for the idea portal API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Idea Portal API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "ideaportal", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Idea": {"type":"object","properties":{"id":{"type":"string"},"summary":{"type":"string"},"description":{"type":"string"},"employeeId":{"type":"string"},"priority":{"type":"string","enum":["High","Medium","Low"]},"upvotes":{"type":"integer"},"downvotes":{"type":"integer"},"createdAt":{"type":"string","format":"date-time"}}},
      "Employee": {"type":"object","properties":{"id":{"type":"string"},"firstName":{"type":"string"},"lastName":{"type":"string"},"name":{"type":"string"},"profileImage":{"type":"string"},"department":{"type":"string"},"email":{"type":"string"},"jobTitle":{"type":"string"}}},
      "Error": {"type":"object","properties":{"error":{"type":"string"},"retryable":{"type":"boolean"}}}
    }
  },
  "paths": {
    "/api/ideas": {
      "get": {
        "summary": "List ideas, most upvoted first",
        "parameters": [
          {"name":"page","in":"query","schema":{"type":"integer","minimum":0,"default":1}},
          {"name":"limit","in":"query","schema":{"type":"integer","minimum":1,"maximum":100,"default":20}},
          {"name":"query","in":"query","schema":{"type":"string"},"description":"case-insensitive substring of summary or description"}
        ],
        "responses": { "200": { "description": "page of ideas (items, totalMatching, totalPages, currentPage, degraded)" }, "400": { "description": "invalid page or limit" } }
      },
      "post": {
        "summary": "Submit an idea",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["summary","description","employeeId"],"properties":{"summary":{"type":"string"},"description":{"type":"string"},"employeeId":{"type":"string"},"priority":{"type":"string","enum":["High","Medium","Low"]}}}}}},
        "responses": { "201": { "description": "created idea" }, "400": { "description": "validation failed" }, "429": { "description": "rate limited" }, "500": { "description": "not saved, retry" } }
      }
    },
    "/api/ideas/{id}": {
      "get": { "summary": "Get an idea with its submitter", "responses": { "200": { "description": "{idea, employee}; employee is null when unknown" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete an idea", "responses": { "200": { "description": "{success: true}" }, "404": { "description": "not found" }, "500": { "description": "not deleted, retry" } } }
    },
    "/api/ideas/{id}/vote": {
      "post": {
        "summary": "Up- or downvote an idea",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"voteType":{"type":"string","enum":["upvote","downvote"]}}}}}},
        "responses": { "200": { "description": "updated idea" }, "400": { "description": "invalid vote type" }, "404": { "description": "not found" }, "500": { "description": "vote not recorded, retry" } }
      }
    },
    "/api/employees": { "get": { "summary": "List employees", "responses": { "200": { "description": "employees" } } } },
    "/api/employees/{id}": { "get": { "summary": "Get an employee", "responses": { "200": { "description": "employee" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "store unreachable" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
