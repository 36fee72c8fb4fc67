// Package docs holds the swagger document served at /swagger. Regenerate with swag init -g cmd/api/main.go.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in and receive a bearer token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/services": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["services"],
                "summary": "List the caller's services",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["services"],
                "summary": "Post a service request",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/services/{id}/quotes": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["quotes"],
                "summary": "Propose a quote on a service",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/quotes/{id}/approve": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["quotes"],
                "summary": "Approve a quote",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "402": {"description": "Payment Required"}, "409": {"description": "Conflict"}}
            }
        },
        "/services/{id}/checkout": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["payments"],
                "summary": "Open a checkout for a service",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Already paid"}, "201": {"description": "Checkout opened"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/payments/webhook": {
            "post": {
                "tags": ["payments"],
                "summary": "Payment gateway notification",
                "responses": {"200": {"description": "Settled"}, "202": {"description": "Not settled yet"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "TopSpot API",
	Description:      "Property service marketplace: service requests, quote negotiation and payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
