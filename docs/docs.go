// Package docs registers the Swagger document of the pizza API
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
                "description": "Check if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/pizza/get_pizza_sizes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List sizes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Size"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/pizza/get_designer_pizzas": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List designer pizzas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Pizza"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/pizza/get_pizza/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a designer pizza by ID",
                "parameters": [{"type": "integer", "description": "Pizza ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Pizza"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/pizza/upload_image": {
            "post": {
                "description": "Stores the file under a unique name. filename is the reference to keep on the pizza, path the public URL path.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Upload a pizza image",
                "parameters": [{"type": "file", "description": "Image file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UploadedImage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/pizza/delete_image/{ref}": {
            "delete": {
                "description": "Accepts dist/images/f, images/f or a bare file name",
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Delete a pizza image",
                "parameters": [{"type": "string", "description": "Stored image reference", "name": "ref", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Size": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "size": {"type": "string"},
                "base_price": {"type": "number"}
            }
        },
        "models.Sauce": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "models.Crust": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "models.ToppingCategory": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.Topping": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/models.ToppingCategory"}}
            }
        },
        "models.Pizza": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "image_url": {"type": "string"},
                "is_available": {"type": "boolean"},
                "sizes": {"type": "array", "items": {"$ref": "#/definitions/models.Size"}},
                "sauce_id": {"type": "integer"},
                "sauce": {"$ref": "#/definitions/models.Sauce"},
                "crust_id": {"type": "integer"},
                "crust": {"$ref": "#/definitions/models.Crust"},
                "toppings": {"type": "array", "items": {"$ref": "#/definitions/models.Topping"}}
            }
        },
        "models.UploadedImage": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "path": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9002",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pizza API",
	Description:      "Catalog of sizes, sauces, crusts, toppings and designer pizzas",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
