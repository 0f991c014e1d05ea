// Package docs holds the OpenAPI document served under /swagger.
//
// Regenerate after changing handler annotations:
//
//	swag init -g cmd/ledger_engine/main.go -o cmd/docs --overridesFile .swaggo
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
        "/accounts": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Registers an account in the chart of accounts with a zero balance",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Create a new account",
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input, account type or normal balance",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Account number already registered",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to create account",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists accounts ordered by number, optionally filtered by type and active flag",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "List the chart of accounts",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Account type",
                        "name": "type",
                        "in": "query",
                        "enum": [
                            "Asset",
                            "Liability",
                            "Equity",
                            "Revenue",
                            "Expense",
                            "Contra-Asset",
                            "Contra-Liability"
                        ]
                    },
                    {
                        "type": "boolean",
                        "description": "Only active (true) or inactive (false) accounts",
                        "name": "active",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListAccountsResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid query parameters",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to list accounts",
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
        "/accounts/{accountNumber}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Get an account by number",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Account number",
                        "name": "accountNumber",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to retrieve account",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Updates descriptive fields or the active flag. Deactivation requires a zero balance.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Update an account",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Account number",
                        "name": "accountNumber",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input or non-zero balance on deactivation",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to update account",
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
        "/auto-post/orders": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Debits accounts receivable and credits sales revenue",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auto-post"
                ],
                "summary": "Record an order sold on account",
                "parameters": [
                    {
                        "description": "Order",
                        "name": "order",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AutoPostOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.PostJournalEntryResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Order already posted",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Configured account missing or inactive",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to post order",
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
        "/auto-post/sales": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Debits cash (cash payments) or receivables (card payments) and credits sales revenue",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auto-post"
                ],
                "summary": "Record a completed sale",
                "parameters": [
                    {
                        "description": "Sale",
                        "name": "sale",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AutoPostSaleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.PostJournalEntryResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request or payment method",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Sale already posted",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Configured account missing or inactive",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to post sale",
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
        "/balance-sheet": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Assets, liabilities and equity including current earnings",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Generate balance sheet",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Report date (YYYY-MM-DD)",
                        "name": "asOfDate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BalanceSheetResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate balance sheet",
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
        "/budget-analysis": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Compares each allocation with the account's activity in the fiscal month",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "Budget versus actual",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Fiscal year",
                        "name": "fiscalYear",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Fiscal month (1-12)",
                        "name": "fiscalMonth",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.BudgetVarianceResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid query",
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
        "/budgets": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates or replaces the allocation of one account for one fiscal month",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "Set a monthly budget",
                "parameters": [
                    {
                        "description": "Allocation",
                        "name": "budget",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SetBudgetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unknown account",
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
        "/cash-flow": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Movements of the cash account within the range grouped into operating, investing and financing activities",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Generate cash flow statement",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start date (YYYY-MM-DD)",
                        "name": "startDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "End date (YYYY-MM-DD)",
                        "name": "endDate",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CashFlowResponse"
                        }
                    },
                    "400": {
                        "description": "Missing or invalid dates",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate cash flow statement",
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
        "/expenses": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records a pending expense. Nothing is posted until it is approved.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Record an expense",
                "parameters": [
                    {
                        "description": "Expense",
                        "name": "expense",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RecordExpenseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ExpenseResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to record expense",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "List expenses",
                "parameters": [
                    {
                        "type": "string",
                        "description": "pending, approved or rejected",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Expense category",
                        "name": "category",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ExpenseResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid filter",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
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
        "/expenses/{expenseID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Get an expense",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Expense ID",
                        "name": "expenseID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ExpenseResponse"
                        }
                    },
                    "404": {
                        "description": "Expense not found",
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
        "/expenses/{expenseID}/approve": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Posts the expense to the ledger and marks it approved. Only pending expenses can be approved.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Approve an expense",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Expense ID",
                        "name": "expenseID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ExpenseResponse"
                        }
                    },
                    "404": {
                        "description": "Expense not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Expense is not pending",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Expense account unknown or inactive",
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
        "/expenses/{expenseID}/reject": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Reject an expense",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Expense ID",
                        "name": "expenseID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ExpenseResponse"
                        }
                    },
                    "404": {
                        "description": "Expense not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Expense is not pending",
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
        "/general-ledger/{accountNumber}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists the account's lines in date order with the running balance after each line",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Get an account's general ledger",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Account number",
                        "name": "accountNumber",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "First date (YYYY-MM-DD)",
                        "name": "startDate",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Last date (YYYY-MM-DD)",
                        "name": "endDate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.GeneralLedgerResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid date range",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to build general ledger",
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
        "/health": {
            "get": {
                "description": "Reports OK when every registered dependency answers.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "root"
                ],
                "summary": "Show the status of server.",
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
        "/income-statement": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Revenue and expense totals with net income and profit margin. The default basis uses live balances; basis=period sums only lines dated within the range.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Generate income statement",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start date (YYYY-MM-DD)",
                        "name": "startDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "End date (YYYY-MM-DD)",
                        "name": "endDate",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "cumulative or period",
                        "name": "basis",
                        "in": "query",
                        "enum": [
                            "cumulative",
                            "period"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.IncomeStatementResponse"
                        }
                    },
                    "400": {
                        "description": "Missing or invalid dates",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate income statement",
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
        "/integrity": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Compares every stored balance with the sum of its lines and checks that total debits equal total credits",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Verify ledger integrity",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.IntegrityResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to verify ledger",
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
        "/journal-entries": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Validates and posts a balanced entry. Nothing is written when validation fails.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Post a manual journal entry",
                "parameters": [
                    {
                        "description": "Journal entry",
                        "name": "entry",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PostJournalEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.PostJournalEntryResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request or structurally invalid lines",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Entry number already used",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unbalanced entry, unknown or inactive account",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to post journal entry",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists entries newest first with token-based pagination",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "List journal entries",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListJournalEntriesResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid query parameters or token",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to list journal entries",
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
        "/journal-entries/{entryNumber}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Get a journal entry and its lines",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry number",
                        "name": "entryNumber",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.GetJournalEntryResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Journal entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to retrieve journal entry",
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
        "/suppliers": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "suppliers"
                ],
                "summary": "Create a supplier",
                "parameters": [
                    {
                        "description": "Supplier",
                        "name": "supplier",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateSupplierRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.SupplierResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "suppliers"
                ],
                "summary": "List suppliers",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Only active suppliers",
                        "name": "activeOnly",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.SupplierResponse"
                            }
                        }
                    }
                }
            }
        },
        "/suppliers/{supplierID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "suppliers"
                ],
                "summary": "Get a supplier",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Supplier ID",
                        "name": "supplierID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SupplierResponse"
                        }
                    },
                    "404": {
                        "description": "Supplier not found",
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
        "/trial-balance": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists every active account's balance in the debit or credit column",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Generate trial balance report",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Report date (YYYY-MM-DD)",
                        "name": "asOfDate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TrialBalanceResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate trial balance",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.BalanceMismatch": {
            "type": "object",
            "properties": {
                "accountNumber": {
                    "type": "string"
                },
                "stored": {
                    "type": "string"
                },
                "computed": {
                    "type": "string"
                }
            }
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "accountNumber": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "accountType": {
                    "type": "string"
                },
                "subType": {
                    "type": "string"
                },
                "normalBalance": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "balance": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "dto.AutoPostOrderRequest": {
            "type": "object",
            "required": [
                "orderId"
            ],
            "properties": {
                "orderId": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "dto.AutoPostSaleRequest": {
            "type": "object",
            "required": [
                "paymentMethod",
                "saleId"
            ],
            "properties": {
                "saleId": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "dto.BalanceSheetResponse": {
            "type": "object",
            "properties": {
                "asOf": {
                    "type": "string"
                },
                "assets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ReportLineResponse"
                    }
                },
                "liabilities": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ReportLineResponse"
                    }
                },
                "equity": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ReportLineResponse"
                    }
                },
                "totalAssets": {
                    "type": "string"
                },
                "totalLiabilities": {
                    "type": "string"
                },
                "totalEquity": {
                    "type": "string"
                },
                "currentEarnings": {
                    "type": "string"
                },
                "totalLiabilitiesAndEquity": {
                    "type": "string"
                },
                "isBalanced": {
                    "type": "boolean"
                }
            }
        },
        "dto.BudgetResponse": {
            "type": "object",
            "properties": {
                "budgetID": {
                    "type": "string"
                },
                "fiscalYear": {
                    "type": "integer"
                },
                "fiscalMonth": {
                    "type": "integer"
                },
                "accountNumber": {
                    "type": "string"
                },
                "budgeted": {
                    "type": "string"
                }
            }
        },
        "dto.BudgetVarianceResponse": {
            "type": "object",
            "properties": {
                "budgetID": {
                    "type": "string"
                },
                "fiscalYear": {
                    "type": "integer"
                },
                "fiscalMonth": {
                    "type": "integer"
                },
                "accountNumber": {
                    "type": "string"
                },
                "budgeted": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "actual": {
                    "type": "string"
                },
                "variance": {
                    "type": "string"
                },
                "variancePct": {
                    "type": "string"
                }
            }
        },
        "dto.CashFlowResponse": {
            "type": "object",
            "properties": {
                "startDate": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                },
                "cashAccountNumber": {
                    "type": "string"
                },
                "operatingActivities": {
                    "type": "string"
                },
                "investingActivities": {
                    "type": "string"
                },
                "financingActivities": {
                    "type": "string"
                },
                "unclassified": {
                    "type": "string"
                },
                "netCashFlow": {
                    "type": "string"
                },
                "endingCashBalance": {
                    "type": "string"
                }
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": [
                "accountName",
                "accountNumber",
                "accountType",
                "normalBalance"
            ],
            "properties": {
                "accountNumber": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "accountType": {
                    "type": "string"
                },
                "normalBalance": {
                    "type": "string"
                },
                "subType": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "dto.CreateSupplierRequest": {
            "type": "object",
            "required": [
                "supplierName"
            ],
            "properties": {
                "supplierName": {
                    "type": "string"
                },
                "contactPerson": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "taxId": {
                    "type": "string"
                },
                "paymentTerms": {
                    "type": "string"
                }
            }
        },
        "dto.ExpenseResponse": {
            "type": "object",
            "properties": {
                "expenseID": {
                    "type": "string"
                },
                "expenseDate": {
                    "type": "string"
                },
                "supplierId": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "receiptUrl": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "approvedBy": {
                    "type": "string"
                },
                "approvedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "journalEntryNumber": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.GeneralLedgerEntryResponse": {
            "type": "object",
            "properties": {
                "entryDate": {
                    "type": "string"
                },
                "journalEntryID": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "referenceType": {
                    "type": "string"
                },
                "debit": {
                    "type": "string"
                },
                "credit": {
                    "type": "string"
                },
                "runningBalance": {
                    "type": "string"
                }
            }
        },
        "dto.GeneralLedgerResponse": {
            "type": "object",
            "properties": {
                "account": {
                    "$ref": "#/definitions/dto.AccountResponse"
                },
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.GeneralLedgerEntryResponse"
                    }
                },
                "endingBalance": {
                    "type": "string"
                }
            }
        },
        "dto.GetJournalEntryResponse": {
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/dto.JournalEntryResponse"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LedgerLineResponse"
                    }
                }
            }
        },
        "dto.IncomeStatementResponse": {
            "type": "object",
            "properties": {
                "startDate": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                },
                "basis": {
                    "type": "string"
                },
                "revenue": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ReportLineResponse"
                    }
                },
                "expenses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ReportLineResponse"
                    }
                },
                "totalRevenue": {
                    "type": "string"
                },
                "totalExpenses": {
                    "type": "string"
                },
                "netIncome": {
                    "type": "string"
                },
                "profitMargin": {
                    "type": "string"
                }
            }
        },
        "dto.IntegrityResponse": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                },
                "checkedAccounts": {
                    "type": "integer"
                },
                "trialBalanced": {
                    "type": "boolean"
                },
                "totalDebits": {
                    "type": "string"
                },
                "totalCredits": {
                    "type": "string"
                },
                "mismatches": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.BalanceMismatch"
                    }
                }
            }
        },
        "dto.JournalEntryResponse": {
            "type": "object",
            "properties": {
                "journalEntryID": {
                    "type": "string"
                },
                "entryNumber": {
                    "type": "string"
                },
                "entryDate": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "referenceType": {
                    "type": "string"
                },
                "memo": {
                    "type": "string"
                },
                "totalAmount": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.JournalLineRequest": {
            "type": "object",
            "required": [
                "accountNumber"
            ],
            "properties": {
                "accountNumber": {
                    "type": "string"
                },
                "debit": {
                    "type": "string"
                },
                "credit": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "dto.LedgerLineResponse": {
            "type": "object",
            "properties": {
                "lineID": {
                    "type": "string"
                },
                "accountNumber": {
                    "type": "string"
                },
                "debit": {
                    "type": "string"
                },
                "credit": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "dto.ListAccountsResponse": {
            "type": "object",
            "properties": {
                "accounts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountResponse"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "dto.ListJournalEntriesResponse": {
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JournalEntryResponse"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "dto.PostJournalEntryRequest": {
            "type": "object",
            "required": [
                "description",
                "entryDate",
                "lines"
            ],
            "properties": {
                "entryNumber": {
                    "type": "string"
                },
                "entryDate": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "referenceType": {
                    "type": "string"
                },
                "memo": {
                    "type": "string"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JournalLineRequest"
                    }
                }
            }
        },
        "dto.PostJournalEntryResponse": {
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/dto.JournalEntryResponse"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LedgerLineResponse"
                    }
                },
                "totalDebits": {
                    "type": "string"
                },
                "totalCredits": {
                    "type": "string"
                }
            }
        },
        "dto.RecordExpenseRequest": {
            "type": "object",
            "required": [
                "category",
                "description",
                "expenseDate"
            ],
            "properties": {
                "expenseDate": {
                    "type": "string"
                },
                "supplierId": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "receiptUrl": {
                    "type": "string"
                }
            }
        },
        "dto.ReportLineResponse": {
            "type": "object",
            "properties": {
                "accountNumber": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                }
            }
        },
        "dto.SetBudgetRequest": {
            "type": "object",
            "required": [
                "accountNumber",
                "fiscalMonth",
                "fiscalYear"
            ],
            "properties": {
                "fiscalYear": {
                    "type": "integer"
                },
                "fiscalMonth": {
                    "type": "integer"
                },
                "accountNumber": {
                    "type": "string"
                },
                "budgeted": {
                    "type": "string"
                }
            }
        },
        "dto.SupplierResponse": {
            "type": "object",
            "properties": {
                "supplierID": {
                    "type": "string"
                },
                "supplierName": {
                    "type": "string"
                },
                "contactPerson": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "taxId": {
                    "type": "string"
                },
                "paymentTerms": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.TrialBalanceResponse": {
            "type": "object",
            "properties": {
                "asOf": {
                    "type": "string"
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TrialBalanceRowResponse"
                    }
                },
                "debit": {
                    "type": "string"
                },
                "credit": {
                    "type": "string"
                },
                "isBalanced": {
                    "type": "boolean"
                }
            }
        },
        "dto.TrialBalanceRowResponse": {
            "type": "object",
            "properties": {
                "accountNumber": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "accountType": {
                    "type": "string"
                },
                "normalBalance": {
                    "type": "string"
                },
                "debit": {
                    "type": "string"
                },
                "credit": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateAccountRequest": {
            "type": "object",
            "properties": {
                "accountName": {
                    "type": "string"
                },
                "subType": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledger Engine API",
	Description:      "Double-entry general ledger with journal posting, financial reports and expense workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
