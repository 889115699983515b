// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/games": {"get": {"tags": ["games"], "summary": "List games", "parameters": [
            {"type": "integer", "name": "page", "in": "query"},
            {"type": "integer", "name": "page_size", "in": "query"}
        ], "responses": {"200": {"description": "OK"}}}},
        "/games/{game}": {"get": {"tags": ["games"], "summary": "Get a game by ID or slug", "parameters": [
            {"type": "string", "name": "game", "in": "path", "required": true}
        ], "responses": {"200": {"description": "OK"}, "404": {"description": "not_found"}}}},
        "/games/{gameID}/factions": {"get": {"tags": ["games"], "summary": "List factions", "parameters": [
            {"type": "string", "name": "gameID", "in": "path", "required": true}
        ], "responses": {"200": {"description": "OK"}}}},
        "/games/{gameID}/availability": {"get": {"tags": ["games"], "summary": "Game availability", "parameters": [
            {"type": "string", "name": "gameID", "in": "path", "required": true}
        ], "responses": {"200": {"description": "OK"}}}},
        "/admin/games": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create a game", "responses": {"201": {"description": "Created"}, "409": {"description": "conflict"}, "422": {"description": "invalid_schedule"}}}},
        "/admin/games/{gameID}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Update a game", "parameters": [{"type": "string", "name": "gameID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete a game", "parameters": [{"type": "string", "name": "gameID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/admin/games/{gameID}/pricing": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Save a game's pricing schedule", "parameters": [{"type": "string", "name": "gameID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "invalid_schedule"}}}},
        "/admin/pricing/append": {"post": {"security": [{"BearerAuth": []}], "tags": ["pricing-editor"], "summary": "Append a price tier", "responses": {"200": {"description": "OK"}}}},
        "/admin/pricing/insert": {"post": {"security": [{"BearerAuth": []}], "tags": ["pricing-editor"], "summary": "Insert a price tier", "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}}}},
        "/admin/pricing/field": {"post": {"security": [{"BearerAuth": []}], "tags": ["pricing-editor"], "summary": "Edit a price tier field", "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}}}},
        "/admin/pricing/remove": {"post": {"security": [{"BearerAuth": []}], "tags": ["pricing-editor"], "summary": "Remove a price tier", "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}}}},
        "/admin/pricing/validate": {"post": {"security": [{"BearerAuth": []}], "tags": ["pricing-editor"], "summary": "Validate a pricing schedule", "responses": {"200": {"description": "OK"}}}},
        "/admin/games/{gameID}/factions": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create a faction", "parameters": [{"type": "string", "name": "gameID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}},
        "/admin/games/{gameID}/factions/{factionID}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Update a faction", "parameters": [{"type": "string", "name": "gameID", "in": "path", "required": true}, {"type": "string", "name": "factionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete a faction", "parameters": [{"type": "string", "name": "gameID", "in": "path", "required": true}, {"type": "string", "name": "factionID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Zone 37 games API",
	Description:      "Games, factions and dynamic ticket pricing for the Zone 37 airsoft site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
