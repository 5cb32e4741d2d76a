// Package docs holds the OpenAPI document served at /swagger. Keep it in
// step with the @-annotations on the handlers.
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
        "/store/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Category"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create category",
                "parameters": [{"description": "category", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateCategoryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/catalog.Category"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            }
        },
        "/store/categories/{id}": {
            "delete": {
                "tags": ["categories"],
                "summary": "Delete category and its products",
                "parameters": [{"type": "string", "description": "category id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            }
        },
        "/store/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Product"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create product",
                "parameters": [{"description": "product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/catalog.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/catalog.HTTPError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            }
        },
        "/store/products/{id}": {
            "delete": {
                "tags": ["products"],
                "summary": "Delete product",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            }
        },
        "/store/blobs/{key}": {
            "get": {
                "tags": ["blobs"],
                "summary": "Download an object",
                "parameters": [{"type": "string", "description": "object key", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "304": {"description": "Not Modified"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            },
            "put": {
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["blobs"],
                "summary": "Upload an object",
                "parameters": [{"type": "string", "description": "object key", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.uploadResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/catalog.HTTPError"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/catalog.HTTPError"}}
                }
            }
        },
        "/store-orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete one order or a set of orders",
                "parameters": [{"description": "order_id or ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.DeleteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/order.Result"}}
                }
            }
        },
        "/store-orders/delivered": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Mark one order, or every pending order, delivered",
                "parameters": [{"description": "order_id or mark_all", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.DeliveredRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/order.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/order.Result"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "catalog.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "category_id": {"type": "string"},
                "image_url": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "catalog.CreateCategoryRequest": {
            "type": "object",
            "properties": {"name": {"type": "string", "example": "Books"}}
        },
        "catalog.CreateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Pen"},
                "price": {"type": "number", "example": 5},
                "category_id": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "catalog.HTTPError": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "category not found"}}
        },
        "main.uploadResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "public_url": {"type": "string"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_name": {"type": "string"},
                "product_name": {"type": "string"},
                "is_delivered": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "order.DeliveredRequest": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "mark_all": {"type": "boolean"}
            }
        },
        "order.DeleteRequest": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "order.Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "updated": {"type": "integer"},
                "deleted": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo is registered with swag under the default instance name.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Points Store API",
	Description:      "Catalog, blob and order endpoints behind the school points store admin screens.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
