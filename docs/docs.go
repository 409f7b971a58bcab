// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "List draft categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.categoriesResponse"}}
                }
            }
        },
        "/drafts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "List generated drafts",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DraftListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Generate a draft",
                "parameters": [
                    {"description": "Category selector", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.generateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Draft"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/drafts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Get a draft",
                "parameters": [{"type": "string", "description": "Draft ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Draft"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["drafts"],
                "summary": "Delete a draft",
                "parameters": [{"type": "string", "description": "Draft ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/drafts/{id}/download": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["drafts"],
                "summary": "Download a draft PDF",
                "parameters": [{"type": "string", "description": "Draft ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/drafts/{id}/preview": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["drafts"],
                "summary": "Preview a draft PDF",
                "parameters": [{"type": "string", "description": "Draft ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/drafts/{id}/link": {
            "get": {
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Get a temporary download link",
                "parameters": [{"type": "string", "description": "Draft ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.linkResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.categoriesResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "string"}},
                "default": {"type": "string"}
            }
        },
        "handler.generateRequest": {
            "type": "object",
            "properties": {"category": {"type": "string", "example": "Pajak"}}
        },
        "handler.linkResponse": {
            "type": "object",
            "properties": {
                "expires_in": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.Draft": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "generation_id": {"type": "string", "example": "RUU-PAJ-0a1b2c3d"},
                "category": {"type": "string"},
                "title": {"type": "string"},
                "filename": {"type": "string"},
                "storage_path": {"type": "string"},
                "size": {"type": "integer"},
                "content_type": {"type": "string"},
                "pages": {"type": "integer"},
                "created_at": {"type": "string"},
                "viewed_at": {"type": "string"}
            }
        },
        "service.DraftListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Draft"}},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Draft Generator API",
	Description:      "Generates draft bill (RUU) PDFs per policy category and keeps a browsable history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
