// Package docs holds the swagger document served at /swagger/*.
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
        "/api/v2/client/{environmentId}/responses": {
            "post": {
                "tags": [
                    "client"
                ],
                "summary": "Submit a survey response",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "environmentId",
                        "in": "path",
                        "required": true,
                        "description": "Environment ID"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ResponseInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/v2/client/{environmentId}/storage": {
            "post": {
                "tags": [
                    "client"
                ],
                "summary": "Upload a file for a file-upload question",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "environmentId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "file",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.UploadedFile"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/v2/client/{environmentId}/storage/{surveyId}/{fileName}": {
            "get": {
                "tags": [
                    "client"
                ],
                "summary": "Download an uploaded file",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "environmentId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "fileName",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/v1/management/environments/{environmentId}/surveys": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "surveys"
                ],
                "summary": "List surveys of an environment",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "environmentId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Page size, 0 for all",
                        "default": 12
                    },
                    {
                        "type": "integer",
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "default": 0
                    },
                    {
                        "type": "string",
                        "name": "name",
                        "in": "query",
                        "required": false,
                        "description": "Name contains"
                    },
                    {
                        "type": "string",
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "Comma separated statuses"
                    },
                    {
                        "type": "string",
                        "name": "type",
                        "in": "query",
                        "required": false,
                        "description": "Comma separated types"
                    },
                    {
                        "type": "string",
                        "name": "createdBy",
                        "in": "query",
                        "required": false,
                        "description": "you, others"
                    },
                    {
                        "type": "string",
                        "name": "sortBy",
                        "in": "query",
                        "required": false,
                        "description": "name, createdAt, updatedAt or relevance"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "array",
                                "items": {
                                    "$ref": "#/definitions/model.SurveySummary"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/management/environments/{environmentId}/surveys/count": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "surveys"
                ],
                "summary": "Count surveys of an environment",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "environmentId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "integer"
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/management/environments/{environmentId}/segments": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "segments"
                ],
                "summary": "List segments a survey can load",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "environmentId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "array",
                                "items": {
                                    "$ref": "#/definitions/model.Segment"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/management/surveys/{surveyId}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "surveys"
                ],
                "summary": "Get a survey",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SurveySummary"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "surveys"
                ],
                "summary": "Delete a survey",
                "parameters": [
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/v1/management/surveys/{surveyId}/copy": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "surveys"
                ],
                "summary": "Copy a survey to another environment",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.copySurveyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.CopiedSurvey"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/v1/management/surveys/{surveyId}/single-use-links": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "surveys"
                ],
                "summary": "Generate single-use survey links",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "count",
                        "in": "query",
                        "required": false,
                        "description": "Number of links (1-5000)",
                        "default": 1
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "array",
                                "items": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/v1/management/surveys/{surveyId}/segment": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "segments"
                ],
                "summary": "Load a segment into a survey",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "surveyId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.loadSegmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SurveySegment"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {
                    "type": "string"
                },
                "error": {
                    "$ref": "#/definitions/handler.errorEnvelope"
                }
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "handler.copySurveyRequest": {
            "type": "object",
            "properties": {
                "environmentId": {
                    "type": "string"
                },
                "targetEnvironmentId": {
                    "type": "string"
                }
            },
            "required": [
                "environmentId",
                "targetEnvironmentId"
            ]
        },
        "handler.loadSegmentRequest": {
            "type": "object",
            "properties": {
                "segmentId": {
                    "type": "string"
                }
            },
            "required": [
                "segmentId"
            ]
        },
        "model.ResponseMeta": {
            "type": "object",
            "properties": {
                "source": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                },
                "userAgent": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                }
            }
        },
        "model.ResponseInput": {
            "type": "object",
            "properties": {
                "surveyId": {
                    "type": "string"
                },
                "environmentId": {
                    "type": "string"
                },
                "data": {
                    "type": "object"
                },
                "finished": {
                    "type": "boolean"
                },
                "ttc": {
                    "type": "object"
                },
                "meta": {
                    "$ref": "#/definitions/model.ResponseMeta"
                },
                "variables": {
                    "type": "object"
                },
                "singleUseId": {
                    "type": "string"
                },
                "language": {
                    "type": "string"
                },
                "displayId": {
                    "type": "string"
                },
                "endingId": {
                    "type": "string"
                },
                "recaptchaToken": {
                    "type": "string"
                }
            },
            "required": [
                "surveyId"
            ]
        },
        "model.SurveySummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "creator": {
                    "type": "object",
                    "properties": {
                        "name": {
                            "type": "string"
                        }
                    }
                },
                "status": {
                    "type": "string"
                },
                "singleUse": {
                    "type": "object",
                    "properties": {
                        "enabled": {
                            "type": "boolean"
                        },
                        "isEncrypted": {
                            "type": "boolean"
                        }
                    }
                },
                "environmentId": {
                    "type": "string"
                },
                "responseCount": {
                    "type": "integer"
                }
            }
        },
        "model.Segment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "isPrivate": {
                    "type": "boolean"
                },
                "filters": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "environmentId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.SurveySegment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "segment": {
                    "$ref": "#/definitions/model.Segment"
                }
            }
        },
        "model.CopiedSurvey": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "environmentId": {
                    "type": "string"
                },
                "segment": {
                    "type": "object",
                    "properties": {
                        "id": {
                            "type": "string"
                        }
                    }
                },
                "triggers": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "languages": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "model.UploadedFile": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "fileName": {
                    "type": "string"
                },
                "originalFileName": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "contentType": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
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
	Title:            "Survey API",
	Description:      "Survey management and response collection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
