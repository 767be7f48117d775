// Package docs registers the OpenAPI description of the API that is
// served at /docs.
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
        "/": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "API root"
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "Get health"
            }
        },
        "/version": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "API version"
            }
        },
        "/v1": {
            "get": {
                "tags": [
                    "v1"
                ],
                "summary": "v1 API"
            }
        },
        "/v1/auth/register": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Register"
            }
        },
        "/v1/auth/login": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Log in"
            }
        },
        "/v1/auth/me": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Current user",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/accounts": {
            "get": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Get accounts with balances",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Create accounts",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/accounts/{id}": {
            "get": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Get account with balance",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Update account",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Delete account",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/categories": {
            "get": {
                "tags": [
                    "Categories"
                ],
                "summary": "Get categories",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Categories"
                ],
                "summary": "Create categories",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/categories/{id}": {
            "get": {
                "tags": [
                    "Categories"
                ],
                "summary": "Get category",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/transactions": {
            "get": {
                "tags": [
                    "Transactions"
                ],
                "summary": "Get transactions",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Transactions"
                ],
                "summary": "Create transactions",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/transactions/{id}": {
            "get": {
                "tags": [
                    "Transactions"
                ],
                "summary": "Get transaction",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Transactions"
                ],
                "summary": "Update transaction",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Transactions"
                ],
                "summary": "Delete transaction",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/budgets": {
            "get": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budgets",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Create budgets",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/budgets/{id}": {
            "get": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budget",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/dashboard/summary": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Get summary",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/dashboard/daily": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Get daily totals",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
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
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
