// Package swagger registers the OpenAPI document served under /swagger.
//
// The document is maintained by hand alongside the @Router annotations of the
// feature handlers; docs_test.go checks that every registered route is described.
package swagger

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
        "/admin/sync": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Starts a sync pass in the background (202). With wait=true the pass runs in the request and its result is returned.",
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Trigger Sync",
                "parameters": [
                    {"type": "boolean", "description": "Wait for the pass to finish", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Completed pass", "schema": {"$ref": "#/definitions/ingest.Result"}},
                    "202": {"description": "Sync started", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Sync already in progress", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Source listing unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/sync/status": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Sync Status",
                "responses": {
                    "200": {"description": "Status", "schema": {"$ref": "#/definitions/ingest.StatusResponse"}}
                }
            }
        },
        "/brainrots": {
            "get": {
                "description": "Lists brainrots ordered by id, optionally filtered by rarity.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List Brainrots",
                "parameters": [
                    {"type": "string", "description": "Rarity tier", "name": "rarity", "in": "query"},
                    {"type": "integer", "description": "Page size (1-100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Page", "schema": {"$ref": "#/definitions/catalog.ListResponse"}},
                    "400": {"description": "Invalid query", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/brainrots/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get Brainrot",
                "parameters": [
                    {"type": "integer", "description": "Brainrot ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Brainrot", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/images/{filename}": {
            "get": {
                "produces": ["image/png", "image/jpeg", "image/gif", "image/webp"],
                "tags": ["catalog"],
                "summary": "Serve Image",
                "parameters": [
                    {"type": "string", "description": "Cached image file name", "name": "filename", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Image"},
                    "400": {"description": "Invalid file name"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/integrity": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Verifies the database schema and that every cached image referenced by the catalog exists.",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run All Integrity Checks",
                "responses": {
                    "200": {"description": "Combined Report", "schema": {"$ref": "#/definitions/integrity.Report"}}
                }
            }
        },
        "/integrity/images": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Images",
                "responses": {
                    "200": {"description": "Image Report", "schema": {"$ref": "#/definitions/checks.ImageReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/schema": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Schema",
                "responses": {
                    "200": {"description": "Schema Report", "schema": {"$ref": "#/definitions/checks.SchemaReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/rarities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Rarity Counts",
                "responses": {
                    "200": {"description": "Counts per tier", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "catalog.ListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "object"}},
                "pagination": {"$ref": "#/definitions/catalog.Pagination"}
            }
        },
        "catalog.Pagination": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "checks.ImageReport": {
            "type": "object",
            "properties": {
                "checked": {"type": "integer"},
                "missing": {"type": "array", "items": {"$ref": "#/definitions/checks.MissingImage"}},
                "status": {"type": "string"}
            }
        },
        "checks.MissingImage": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "image_path": {"type": "string"}
            }
        },
        "checks.SchemaReport": {
            "type": "object",
            "properties": {
                "table": {"type": "string"},
                "matched": {"type": "boolean"},
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"}
            }
        },
        "ingest.Failure": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "ingest.Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "source": {"type": "string"},
                "total_seen": {"type": "integer"},
                "created": {"type": "integer"},
                "updated": {"type": "integer"},
                "errors": {"type": "integer"},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/ingest.Failure"}},
                "duration_ms": {"type": "integer"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"}
            }
        },
        "ingest.Status": {
            "type": "object",
            "properties": {
                "running": {"type": "boolean"},
                "last_sync_at": {"type": "string"}
            }
        },
        "ingest.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"$ref": "#/definitions/ingest.Status"},
                "last_result": {"$ref": "#/definitions/ingest.Result"}
            }
        },
        "integrity.Report": {
            "type": "object",
            "properties": {
                "schema": {"$ref": "#/definitions/checks.SchemaReport"},
                "images": {"$ref": "#/definitions/checks.ImageReport"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Brainrot Catalog API",
	Description:      "Catalog of brainrot entities ingested from the badge API and the community wiki.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
