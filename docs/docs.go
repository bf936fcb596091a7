package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "PM Insights API",
    "description": "Preventive-maintenance metrics, scheduling recommendations and calendar",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {
        "tags": ["health"],
        "summary": "Store health",
        "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}
      }
    },
    "/api/pm/metrics": {
      "get": {
        "tags": ["pm"],
        "summary": "PM metrics and insights",
        "produces": ["application/json"],
        "parameters": [
          {"name": "start", "in": "query", "type": "string", "description": "Inclusive start date (YYYY-MM-DD)"},
          {"name": "end", "in": "query", "type": "string", "description": "Exclusive end date (YYYY-MM-DD)"},
          {"name": "building", "in": "query", "type": "string"},
          {"name": "region", "in": "query", "type": "string"},
          {"name": "zone", "in": "query", "type": "string"},
          {"name": "trade", "in": "query", "type": "string"},
          {"name": "status", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
          {"name": "periods", "in": "query", "type": "integer", "minimum": 1, "maximum": 24}
        ],
        "responses": {"200": {"description": "Metrics bundle"}, "400": {"description": "Invalid query"}}
      }
    },
    "/api/pm/recommendations": {
      "get": {
        "tags": ["pm"],
        "summary": "Scheduling recommendations",
        "produces": ["application/json"],
        "parameters": [
          {"name": "building", "in": "query", "type": "string"},
          {"name": "trade", "in": "query", "type": "string"},
          {"name": "look_ahead_days", "in": "query", "type": "integer", "minimum": 1, "maximum": 365}
        ],
        "responses": {"200": {"description": "Bucketed recommendations"}, "400": {"description": "Invalid query"}}
      }
    },
    "/api/pm/calendar": {
      "get": {
        "tags": ["pm"],
        "summary": "PM calendar",
        "produces": ["application/json"],
        "parameters": [
          {"name": "start", "in": "query", "type": "string"},
          {"name": "end", "in": "query", "type": "string"},
          {"name": "building", "in": "query", "type": "string"}
        ],
        "responses": {"200": {"description": "Calendar events and stats"}, "400": {"description": "Invalid query"}}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
