// Package docs registers the OpenAPI description served under /swagger.
//
// It mirrors the swag annotations on cmd/main.go and internal/api; keep both in
// sync when an endpoint changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "https://github.com/guttosm/stockfn",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/stockfn",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/addStock": {
            "get": {
                "description": "Creates the default stock record when nothing matches code and returns the stored record. Logical failures answer 200 with {\"error\": \"\u003cmessage\u003e\"}.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Add a stock",
                "parameters": [
                    {
                        "type": "string",
                        "example": "5168",
                        "description": "Stock code",
                        "name": "code",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.StockResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Always returns OK if the service is running",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns ready if the record store is reachable",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/showStock": {
            "get": {
                "description": "Returns the stock whose code matches. Logical failures answer 200 with {\"error\": \"\u003cmessage\u003e\"}.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Show a stock",
                "parameters": [
                    {
                        "type": "string",
                        "example": "5168",
                        "description": "Stock code",
                        "name": "code",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Found",
                        "schema": {
                            "$ref": "#/definitions/dto.StockResponse"
                        }
                    }
                }
            }
        },
        "/updateStock": {
            "get": {
                "description": "Writes a fixed price to the stock whose code matches and returns it as stored afterwards. Logical failures answer 200 with {\"error\": \"\u003cmessage\u003e\"}.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Update a stock",
                "parameters": [
                    {
                        "type": "string",
                        "example": "5168",
                        "description": "Stock code",
                        "name": "code",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated",
                        "schema": {
                            "$ref": "#/definitions/dto.StockResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.StockResponse": {
            "type": "object",
            "properties": {
                "doc": {
                    "$ref": "#/definitions/models.Stock"
                }
            }
        },
        "models.Stock": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string",
                    "example": "Health Care Equipment & Services"
                },
                "code": {
                    "type": "string",
                    "example": "5168"
                },
                "countryCode": {
                    "type": "string",
                    "example": "MY"
                },
                "dy": {
                    "type": "number",
                    "example": 30.57
                },
                "name": {
                    "type": "string",
                    "example": "Hartalega Holdings Berhad"
                },
                "pe": {
                    "type": "number",
                    "example": 5.64
                },
                "price": {
                    "type": "number",
                    "example": 1.75
                },
                "roe": {
                    "type": "number",
                    "example": 20.83
                },
                "symbol": {
                    "type": "string",
                    "example": "HARTA"
                },
                "top": {
                    "type": "boolean",
                    "example": true
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "stockfn API",
	Description:      "Regional stock record lookup, update and creation endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
