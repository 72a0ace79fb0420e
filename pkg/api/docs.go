package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/records/{name}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["records"],
                "summary": "Read a record",
                "parameters": [
                    {"type": "string", "description": "Record name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Write a record",
                "parameters": [
                    {"type": "string", "description": "Record name", "name": "name", "in": "path", "required": true},
                    {"description": "Payload", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.WriteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/records/{name}/header": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Inspect a record",
                "parameters": [
                    {"type": "string", "description": "Record name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/store.HeaderInfo"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "kind": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "api.WriteResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "size": {"type": "integer"}
            }
        },
        "store.HeaderInfo": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "file_size": {"type": "integer"},
                "magic": {"type": "integer"},
                "stored_checksum": {"type": "integer"},
                "computed_checksum": {"type": "integer"},
                "payload_size": {"type": "integer"},
                "valid": {"type": "boolean"},
                "problem": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "recordstore REST API",
	Description:      "HTTP access to checksummed single-record files.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
