// Package docs holds the generated swagger description served at /swagger.
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
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "string"}
                        }
                    }
                }
            }
        },
        "/posts": {
            "get": {
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Landing page",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/signup": {
            "get": {
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Registration form",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true, "description": "Account name (1-10 characters, unique)"},
                    {"type": "string", "name": "gender", "in": "formData", "required": true, "description": "male, female or unspecified"},
                    {"type": "string", "name": "bio", "in": "formData", "required": true, "description": "Biography (1-30 characters)"},
                    {"type": "string", "name": "password", "in": "formData", "required": true, "description": "Password (at least 6 characters)"},
                    {"type": "string", "name": "repassword", "in": "formData", "required": true, "description": "Password confirmation"},
                    {"type": "file", "name": "avatar", "in": "formData", "required": true, "description": "Avatar image"}
                ],
                "responses": {
                    "302": {"description": "Redirect: /posts on success, /signup on validation failure or name conflict"}
                }
            }
        },
        "/signout": {
            "get": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "302": {"description": "Redirect to /posts"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "myblog API",
	Description:      "User registration and session establishment for the myblog platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
