// Package swagger registers the OpenAPI document served under /swagger.
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
        "/validation": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Validate supplied inventories",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "502": {"description": "Rules unavailable"}
                }
            }
        },
        "/validation/activities/{aid}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Validate the inventories of an activity",
                "parameters": [
                    {"type": "string", "description": "Activity ID", "name": "aid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Activity not found"},
                    "502": {"description": "Field service platform unavailable"}
                }
            }
        },
        "/rules": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "List the rules in effect",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Rules unavailable"}
                }
            }
        },
        "/rules/refresh": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "Reload the rules from their source",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Rules unavailable"}
                }
            }
        },
        "/rules/import": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "Import rules from a spreadsheet",
                "parameters": [
                    {"type": "file", "description": "Rule workbook", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Malformed workbook"},
                    "503": {"description": "No import target"}
                }
            }
        },
        "/integrity": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run all integrity checks",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/integrity/storage": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check the rule snapshot",
                "parameters": [
                    {"type": "boolean", "description": "Publish the current rules", "name": "fix", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Storage not configured"}}
            }
        },
        "/integrity/schema": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check the rule table schema",
                "parameters": [
                    {"type": "boolean", "description": "Migrate the table", "name": "fix", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Database not connected"}}
            }
        },
        "/integrity/rules": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Audit the rules in effect",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Equipment Validator API",
	Description:      "Validates installed equipment against its source and control rules.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
