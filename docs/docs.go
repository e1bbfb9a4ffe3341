// Package docs holds the OpenAPI document for the VYB-R8R API, served under /docs/.
// It follows the layout swag init produces and is kept in sync with the
// handler annotations by hand.
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
        "/api/auth/onboarding-status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Check whether a wallet's user finished onboarding",
                "parameters": [
                    {"type": "string", "description": "Wallet address", "name": "walletAddress", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.OnboardingStatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        },
        "/api/auth/wallet-auth": {
            "post": {
                "description": "Resolves the wallet to its user, creating it on first contact, and returns a 30-day bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign in with a wallet address",
                "parameters": [
                    {"description": "Connected wallet", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.WalletAuthRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.WalletAuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/api/interests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interests"],
                "summary": "All interests",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Interest"}}}
                }
            }
        },
        "/api/interests/user/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interests"],
                "summary": "Interests of a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Interest"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "description": "Up to ten creators ordered by follower count",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Top creators",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.UserProfile"}}}
                }
            }
        },
        "/api/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Full profile of the credential's user, including the linked creator token",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserProfile"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        },
        "/api/users/media/presign": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Returns a short-lived PUT URL; pass publicUrl as avatar or banner when completing onboarding",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Presign an avatar or banner upload",
                "parameters": [
                    {"description": "Upload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PresignMediaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PresignMediaResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        },
        "/api/users/onboarding": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Sets username, handle and optional profile fields, and connects interests by name",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Complete onboarding",
                "parameters": [
                    {"description": "Profile", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.OnboardingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserProfile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        },
        "/api/users/{handle}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Public profile",
                "parameters": [
                    {"type": "string", "description": "Handle", "name": "handle", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserProfile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.Payload"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "environment": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handlers.OnboardingRequest": {
            "type": "object",
            "required": ["handle", "username"],
            "properties": {
                "avatar": {"type": "string"},
                "banner": {"type": "string"},
                "bio": {"type": "string", "maxLength": 280},
                "handle": {"type": "string"},
                "interests": {"type": "array", "maxItems": 20, "items": {"type": "string"}},
                "username": {"type": "string", "maxLength": 50}
            }
        },
        "handlers.OnboardingStatusResponse": {
            "type": "object",
            "properties": {
                "isOnboarded": {"type": "boolean"}
            }
        },
        "handlers.PresignMediaRequest": {
            "type": "object",
            "required": ["contentType", "kind"],
            "properties": {
                "contentType": {"type": "string"},
                "kind": {"type": "string"}
            }
        },
        "handlers.PresignMediaResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "key": {"type": "string"},
                "publicUrl": {"type": "string"},
                "uploadUrl": {"type": "string"}
            }
        },
        "handlers.UserProfile": {
            "type": "object",
            "properties": {
                "avatar": {"type": "string"},
                "banner": {"type": "string"},
                "bio": {"type": "string"},
                "createdAt": {"type": "string"},
                "followers": {"type": "integer"},
                "following": {"type": "integer"},
                "handle": {"type": "string"},
                "id": {"type": "string"},
                "interests": {"type": "array", "items": {"$ref": "#/definitions/models.Interest"}},
                "isCreator": {"type": "boolean"},
                "isOnboarded": {"type": "boolean"},
                "token": {"$ref": "#/definitions/models.CreatorToken"},
                "tokenHolders": {"type": "integer"},
                "updatedAt": {"type": "string"},
                "username": {"type": "string"},
                "walletAddress": {"type": "string"}
            }
        },
        "handlers.WalletAuthRequest": {
            "type": "object",
            "required": ["walletAddress"],
            "properties": {
                "walletAddress": {"type": "string"}
            }
        },
        "handlers.WalletAuthResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/services.UserSummary"}
            }
        },
        "models.CreatorToken": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "currentPrice": {"type": "number"},
                "id": {"type": "string"},
                "tokenName": {"type": "string"},
                "tokenSymbol": {"type": "string"},
                "totalSupply": {"type": "integer"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "models.Interest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "services.UserSummary": {
            "type": "object",
            "properties": {
                "avatar": {"type": "string"},
                "handle": {"type": "string"},
                "id": {"type": "string"},
                "isOnboarded": {"type": "boolean"},
                "username": {"type": "string"},
                "walletAddress": {"type": "string"}
            }
        },
        "utils.Payload": {
            "type": "object",
            "properties": {
                "data": {},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "VYB-R8R API",
	Description:      "Wallet sign-in, onboarding and creator profiles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
