// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["system"], "summary": "Liveness and database check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}
            }
        },
        "/users/check-availability": {
            "post": {
                "tags": ["users"], "summary": "Check username and email availability",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AvailabilityRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AvailabilityResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/users/register": {
            "post": {
                "tags": ["users"], "summary": "Register a paid member",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RegisterResponse"}},
                    "400": {"description": "Validation, collision or signature error", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["users"], "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/users/profile": {
            "get": {
                "tags": ["users"], "summary": "Current user's profile", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserDTO"}}}
            }
        },
        "/users/profile/{username}": {
            "get": {
                "tags": ["users"], "summary": "Profile by username (owner only)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "username", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserDTO"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/users/update/{username}": {
            "put": {
                "tags": ["users"], "summary": "Update own profile", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "username", "required": true, "type": "string"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/users/change-password": {
            "post": {
                "tags": ["users"], "summary": "Change own password", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ChangePasswordRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Current password is incorrect"}}
            }
        },
        "/payment/create-order": {
            "post": {
                "tags": ["payment"], "summary": "Create a registration payment order",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrderRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderResponse"}}}
            }
        },
        "/payment/create-library-access-order": {
            "post": {
                "tags": ["payment"], "summary": "Create a library access payment order", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderResponse"}}, "403": {"description": "Forbidden"}}
            }
        },
        "/payment/verify-library-payment": {
            "post": {
                "tags": ["payment"], "summary": "Verify a library access payment", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.VerifyLibraryPaymentRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid payment signature"}, "403": {"description": "Forbidden"}}
            }
        },
        "/legal-advice/submit": {
            "post": {
                "tags": ["submissions"], "summary": "Submit a legal-advice request", "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "title", "required": true, "type": "string"},
                    {"in": "formData", "name": "description", "required": true, "type": "string"},
                    {"in": "formData", "name": "file", "type": "file"}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/legal-advice/requests": {
            "get": {
                "tags": ["submissions"], "summary": "Caller's legal-advice requests", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SubmissionDTO"}}}}
            }
        },
        "/mining-plan/submit": {
            "post": {
                "tags": ["submissions"], "summary": "Submit a mining-plan query", "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "title", "required": true, "type": "string"},
                    {"in": "formData", "name": "description", "required": true, "type": "string"},
                    {"in": "formData", "name": "username", "type": "string"},
                    {"in": "formData", "name": "file", "type": "file"}
                ],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}
            }
        },
        "/mining-plan/queries/{username}": {
            "get": {
                "tags": ["submissions"], "summary": "Mining-plan queries of a user (owner only)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "username", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SubmissionDTO"}}}, "403": {"description": "Forbidden"}}
            }
        },
        "/files/{kind}/{id}": {
            "get": {
                "tags": ["files"], "summary": "Download the attachment of an own submission", "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"in": "path", "name": "kind", "required": true, "type": "string", "enum": ["legal-advice", "mining-plan"]},
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "query", "name": "download", "type": "boolean"}
                ],
                "responses": {"200": {"description": "File", "schema": {"type": "file"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "domain": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {}
                    }
                }
            }
        },
        "dto.AvailabilityRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}}
        },
        "dto.AvailabilityResponse": {
            "type": "object",
            "properties": {"usernameAvailable": {"type": "boolean"}, "emailAvailable": {"type": "boolean"}}
        },
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password", "name", "status", "orderId", "paymentId", "signature"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string"},
                "firmName": {"type": "string"},
                "companyName": {"type": "string"},
                "minerals": {"type": "string"},
                "licenseNo": {"type": "string"},
                "orderId": {"type": "string"},
                "paymentId": {"type": "string"},
                "signature": {"type": "string"}
            }
        },
        "dto.RegisterResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserDTO"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expiresAt": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserDTO"}}
        },
        "dto.UserDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string"},
                "categoryDetails": {"type": "object"},
                "paymentStatus": {"type": "string"},
                "hasLibraryAccess": {"type": "boolean"},
                "libraryPaymentStatus": {"type": "string"},
                "state": {"type": "string"},
                "district": {"type": "string"},
                "plotNo": {"type": "string"},
                "minerals": {"type": "string"},
                "licenseNo": {"type": "string"}
            }
        },
        "dto.UpdateProfileRequest": {
            "type": "object",
            "required": ["name", "email", "status"],
            "properties": {
                "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "status": {"type": "string"},
                "categoryDetails": {"type": "object"},
                "state": {"type": "string"}, "district": {"type": "string"}, "plotNo": {"type": "string"},
                "minerals": {"type": "string"}, "licenseNo": {"type": "string"}
            }
        },
        "dto.ChangePasswordRequest": {
            "type": "object",
            "required": ["currentPassword", "newPassword"],
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string"}}
        },
        "dto.CreateOrderRequest": {
            "type": "object",
            "properties": {"amount": {"type": "integer"}, "status": {"type": "string"}}
        },
        "dto.OrderResponse": {
            "type": "object",
            "properties": {"key_id": {"type": "string"}, "amount": {"type": "integer"}, "currency": {"type": "string"}, "orderId": {"type": "string"}}
        },
        "dto.VerifyLibraryPaymentRequest": {
            "type": "object",
            "required": ["razorpay_order_id", "razorpay_payment_id", "razorpay_signature"],
            "properties": {
                "razorpay_order_id": {"type": "string"},
                "razorpay_payment_id": {"type": "string"},
                "razorpay_signature": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "dto.SubmissionDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "fileName": {"type": "string"},
                "fileUrl": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Mining Law Portal API",
	Description:      "Membership, library access and consultation requests of the mining-law portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
