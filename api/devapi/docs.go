// Package devapi holds the OpenAPI document served at /swagger/ by the
// development API. Regenerate with:
//
//	swag init -g internal/devapi/http/router.go -o api/devapi --outputTypes go
package devapi

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/fireme"
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
		"/accounts/register/": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Register a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.RegisterResponse"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.RegisterRequest"
						}
					}
				]
			}
		},
		"/accounts/login/": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Log in",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.LoginResponse"
						}
					},
					"401": {
						"description": "Invalid credentials",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.LoginRequest"
						}
					}
				]
			}
		},
		"/accounts/token/refresh/": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Refresh an access token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.refreshResponse"
						}
					},
					"401": {
						"description": "Token is invalid or expired",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.refreshRequest"
						}
					}
				]
			}
		},
		"/accounts/token/verify": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Verify a token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"401": {
						"description": "Token is invalid or expired",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.verifyRequest"
						}
					}
				]
			}
		},
		"/api/campaigns/": {
			"get": {
				"tags": [
					"Campaigns"
				],
				"summary": "List campaigns",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/apisdk.Campaign"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Campaigns"
				],
				"summary": "Create a campaign",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Campaign"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.CreateCampaignRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/campaigns/{id}/": {
			"get": {
				"tags": [
					"Campaigns"
				],
				"summary": "Get a campaign",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Campaign"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Campaign id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/queries/": {
			"get": {
				"tags": [
					"Queries"
				],
				"summary": "List search queries",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/apisdk.Query"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Only queries of this campaign",
						"name": "campaign",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Queries"
				],
				"summary": "Add a search query to a campaign",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Query"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.CreateQueryRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/polls/": {
			"get": {
				"tags": [
					"Polls"
				],
				"summary": "List polls",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/apisdk.Poll"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Only polls under this campaign",
						"name": "campaign",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Only polls on this search query",
						"name": "query",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Polls"
				],
				"summary": "Schedule a poll",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Poll"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.CreatePollRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/questions/": {
			"get": {
				"tags": [
					"Questions"
				],
				"summary": "List questions",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/apisdk.Question"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Case-insensitive substring",
						"name": "search",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Questions"
				],
				"summary": "Create a question",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Question"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.questionBody"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/questions/{id}/": {
			"patch": {
				"tags": [
					"Questions"
				],
				"summary": "Edit a question",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Question"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Question id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.questionBody"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"Questions"
				],
				"summary": "Delete a question and its answers",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Question id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/questions/{id}/answers/": {
			"get": {
				"tags": [
					"Answers"
				],
				"summary": "List a question's answers",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/apisdk.Answer"
							}
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Question id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/questions/{id}/add_answer/": {
			"post": {
				"tags": [
					"Answers"
				],
				"summary": "Add an answer to a question",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Answer"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Question id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.answerBody"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/answers/{id}/": {
			"patch": {
				"tags": [
					"Answers"
				],
				"summary": "Edit an answer",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.Answer"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Answer id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.answerBody"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"Answers"
				],
				"summary": "Delete an answer",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Answer id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/platforms/": {
			"get": {
				"tags": [
					"Platforms"
				],
				"summary": "List platforms",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/apisdk.Platform"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/platforms/connections/": {
			"get": {
				"tags": [
					"Platforms"
				],
				"summary": "List the caller's platform connections",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"results": {
									"type": "array",
									"items": {
										"$ref": "#/definitions/apisdk.Connection"
									}
								}
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/platforms/{id}/app/": {
			"post": {
				"tags": [
					"Platforms"
				],
				"summary": "Store the platform app's client id and secret",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Platform id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.AppUpsertRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/platforms/{id}/app_info/": {
			"get": {
				"tags": [
					"Platforms"
				],
				"summary": "Report whether an app is configured",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.AppInfo"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Platform id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/platforms/{id}/connect_credentials/": {
			"post": {
				"tags": [
					"Platforms"
				],
				"summary": "Connect user credentials to a platform",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.ConnectCredentialsResponse"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Platform id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/apisdk.ConnectCredentialsRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/platforms/{id}/disconnect/": {
			"post": {
				"tags": [
					"Platforms"
				],
				"summary": "Remove platform connections",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/apisdk.DisconnectResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Platform id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.disconnectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/livez": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Health Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.healthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"credstore.Identity": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"institution": {
					"type": "string"
				}
			}
		},
		"apisdk.LoginRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"apisdk.LoginResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/credstore.Identity"
				},
				"access": {
					"type": "string"
				},
				"refresh": {
					"type": "string"
				}
			}
		},
		"apisdk.RegisterRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"institution": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"apisdk.RegisterResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/credstore.Identity"
				}
			}
		},
		"apisdk.Campaign": {
			"type": "object",
			"properties": {
				"campaign_id": {
					"type": "integer"
				},
				"plt": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"modified_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"apisdk.CreateCampaignRequest": {
			"type": "object",
			"properties": {
				"plt": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"apisdk.Query": {
			"type": "object",
			"properties": {
				"query_id": {
					"type": "integer"
				},
				"campaign": {
					"type": "integer"
				},
				"search_term": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"modified_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"apisdk.CreateQueryRequest": {
			"type": "object",
			"properties": {
				"campaign": {
					"type": "integer"
				},
				"search_term": {
					"type": "string"
				}
			}
		},
		"apisdk.Poll": {
			"type": "object",
			"properties": {
				"poll_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"query": {
					"type": "integer"
				},
				"question": {
					"type": "integer"
				},
				"starts_at": {
					"type": "string",
					"format": "date-time"
				},
				"ends_at": {
					"type": "string",
					"format": "date-time"
				},
				"is_active": {
					"type": "boolean"
				}
			}
		},
		"apisdk.CreatePollRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"query": {
					"type": "integer"
				},
				"question": {
					"type": "integer"
				},
				"starts_at": {
					"type": "string",
					"format": "date-time"
				},
				"ends_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"apisdk.Question": {
			"type": "object",
			"properties": {
				"question_id": {
					"type": "integer"
				},
				"question": {
					"type": "string"
				},
				"answers": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/apisdk.Answer"
					}
				},
				"is_active": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"modified_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"apisdk.Answer": {
			"type": "object",
			"properties": {
				"answer_id": {
					"type": "integer"
				},
				"question": {
					"type": "integer"
				},
				"answer": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"modified_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"apisdk.Platform": {
			"type": "object",
			"properties": {
				"plt_id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"logo_url": {
					"type": "string"
				},
				"webpage": {
					"type": "string"
				},
				"connected": {
					"type": "boolean"
				}
			}
		},
		"apisdk.AppUpsertRequest": {
			"type": "object",
			"properties": {
				"client_id": {
					"type": "string"
				},
				"client_secret": {
					"type": "string"
				},
				"meta": {
					"type": "object",
					"additionalProperties": true
				}
			}
		},
		"apisdk.AppInfo": {
			"type": "object",
			"properties": {
				"exists": {
					"type": "boolean"
				},
				"meta": {
					"type": "object",
					"additionalProperties": true
				},
				"masked": {
					"type": "boolean"
				}
			}
		},
		"apisdk.ConnectCredentialsRequest": {
			"type": "object",
			"properties": {
				"external_account_id": {
					"type": "string"
				},
				"external_username": {
					"type": "string"
				},
				"oauth_version": {
					"type": "string",
					"enum": [
						"oauth1a",
						"oauth2",
						"app"
					]
				},
				"bearer_token": {
					"type": "string"
				},
				"access_token": {
					"type": "string"
				},
				"refresh_token": {
					"type": "string"
				},
				"token_secret": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				},
				"scope": {
					"type": "string"
				},
				"expires_at": {
					"type": "string",
					"format": "date-time"
				},
				"meta": {
					"type": "object",
					"additionalProperties": true
				}
			}
		},
		"apisdk.ConnectCredentialsResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"upc_id": {
					"type": "integer"
				},
				"expires_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"apisdk.DisconnectResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"apisdk.Connection": {
			"type": "object",
			"properties": {
				"upc_id": {
					"type": "integer"
				},
				"platform": {
					"$ref": "#/definitions/apisdk.Platform"
				},
				"external_account_id": {
					"type": "string"
				},
				"external_username": {
					"type": "string"
				},
				"oauth_version": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				},
				"scope": {
					"type": "string"
				},
				"expires_at": {
					"type": "string",
					"format": "date-time"
				},
				"is_active": {
					"type": "boolean"
				}
			}
		},
		"http.refreshRequest": {
			"type": "object",
			"properties": {
				"refresh": {
					"type": "string"
				}
			}
		},
		"http.refreshResponse": {
			"type": "object",
			"properties": {
				"access": {
					"type": "string"
				},
				"refresh": {
					"type": "string"
				}
			}
		},
		"http.verifyRequest": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				}
			}
		},
		"http.questionBody": {
			"type": "object",
			"properties": {
				"question": {
					"type": "string"
				}
			}
		},
		"http.answerBody": {
			"type": "object",
			"properties": {
				"answer": {
					"type": "string"
				}
			}
		},
		"http.disconnectRequest": {
			"type": "object",
			"properties": {
				"external_account_id": {
					"type": "string"
				},
				"oauth_version": {
					"type": "string"
				}
			}
		},
		"http.healthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Access token. Format: \"Bearer {token}\".",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "FireMe Development API",
	Description:      "In-memory stand-in for the FireMe campaign backend. Tokens are SimpleJWT-style HS256 pairs and errors use DRF's shapes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
