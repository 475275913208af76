// Package docs registers the dashboard's Swagger document.
// Regenerate with: swag init -g cmd/main.go
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
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/page": {"get": {"tags": ["page"], "summary": "Page elements", "produces": ["application/json"], "responses": {"200": {"description": "version, devices, elements"}}}},
        "/api/v1/poll": {"post": {"tags": ["page"], "summary": "Poll devices now", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Missing elements"}, "502": {"description": "Backend failure"}}}},
        "/api/v1/devices/{id}": {
            "get": {"tags": ["devices"], "summary": "Device elements", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not mounted"}}},
            "put": {"tags": ["devices"], "summary": "Mount device markup", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad body"}}},
            "delete": {"tags": ["devices"], "summary": "Unmount device markup", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not mounted"}}}
        },
        "/api/v1/devices/{id}/inputs": {"put": {"tags": ["devices"], "summary": "Type into profile inputs", "consumes": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}], "responses": {"200": {"description": "OK"}, "404": {"description": "Missing input"}}}},
        "/api/v1/devices/{id}/profile": {"post": {"tags": ["devices"], "summary": "Submit custom profile", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid profile"}, "404": {"description": "Missing input"}, "502": {"description": "Backend failure"}}}},
        "/api/v1/devices/{id}/status": {"post": {"tags": ["devices"], "summary": "Send status command", "consumes": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CommandRequest"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Rejected"}, "502": {"description": "Backend failure"}}}},
        "/api/v1/layout": {"get": {"tags": ["layout"], "summary": "Current split-pane layout", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PaneLayout"}}}}},
        "/api/v1/layout/init": {"post": {"tags": ["layout"], "summary": "Initialize split pane", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.Container"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PaneLayout"}}}}},
        "/api/v1/layout/pointer": {"post": {"tags": ["layout"], "summary": "Splitter pointer event", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PointerRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PaneLayout"}}}}},
        "/api/v1/layout/viewport": {"post": {"tags": ["layout"], "summary": "Viewport resize", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ViewportRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PaneLayout"}}}}},
        "/api/v1/commands": {"get": {"tags": ["commands"], "summary": "List sent commands", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"type": "string", "name": "device", "in": "query"}, {"enum": ["sent", "failed", "rejected"], "type": "string", "name": "outcome", "in": "query"}], "responses": {"200": {"description": "count, commands"}, "400": {"description": "Bad filter"}}}}
    },
    "definitions": {
        "handlers.CommandRequest": {"type": "object", "properties": {"status": {"type": "integer", "example": 1}, "preset_id": {"type": "string", "example": "4"}, "custom_preset": {"$ref": "#/definitions/models.CustomPreset"}}},
        "handlers.PointerRequest": {"type": "object", "required": ["event"], "properties": {"event": {"type": "string", "example": "move"}, "client_x": {"type": "number", "example": 512}}},
        "handlers.ViewportRequest": {"type": "object", "properties": {"height": {"type": "number", "example": 900}, "container": {"$ref": "#/definitions/service.Container"}}},
        "models.CustomPreset": {"type": "object", "properties": {"temperature": {"type": "string"}, "max_temperature_delta": {"type": "string"}, "humidity": {"type": "string"}, "dry_time": {"type": "string"}, "storage_temperature": {"type": "string"}, "humidity_storage_range": {"type": "string"}, "humidity_storage_dry_time": {"type": "string"}}},
        "service.Container": {"type": "object", "properties": {"left": {"type": "number"}, "width": {"type": "number"}}},
        "service.PaneLayout": {"type": "object", "properties": {"state": {"type": "string"}, "left_width": {"type": "number"}, "right_width": {"type": "number"}, "overlay_visible": {"type": "boolean"}, "listeners_attached": {"type": "boolean"}, "chart_height": {"type": "number"}, "container": {"$ref": "#/definitions/service.Container"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Chamber Dashboard API",
	Description:      "Operator dashboard for drying chambers: live telemetry, profile commands and layout state.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
