package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Election Result API",
        "description": "Record keeping for collated election results",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Results", "description": "Election result records"},
        {"name": "System", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness probe, checks the document store",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/gettotal": {
            "get": {
                "tags": ["Results"],
                "summary": "Total result for a party",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/TotalRequest"}},
                    {"name": "parties", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TotalResponse"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/post-election": {
            "post": {
                "tags": ["Results"],
                "summary": "Record an election result",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateElectionResultRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResultEnvelope"}},
                    "400": {"description": "Rejected payload", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/results": {
            "get": {
                "tags": ["Results"],
                "summary": "List election results",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResultListEnvelope"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/results/export": {
            "get": {
                "tags": ["Results"],
                "summary": "Download all election results",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/results/{stateId}": {
            "get": {
                "tags": ["Results"],
                "summary": "Get election result by id",
                "parameters": [
                    {"name": "stateId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResultEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Results"],
                "summary": "Delete election result",
                "parameters": [
                    {"name": "stateId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/ResultEnvelope"}},
                    "400": {"description": "Not found (legacy status)", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/rigged/{stateId}": {
            "put": {
                "tags": ["Results"],
                "summary": "Overwrite a result and mark it as rigged",
                "parameters": [
                    {"name": "stateId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/RigResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResultEnvelope"}},
                    "400": {"description": "Not found (legacy status) or bad payload", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "ElectionResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "state": {"type": "string"},
                "parties": {"type": "string"},
                "result": {"type": "number"},
                "collationOfficer": {"type": "string"},
                "isRigged": {"type": "boolean"},
                "totalLg": {"type": "number"}
            }
        },
        "CreateElectionResultRequest": {
            "type": "object",
            "required": ["result"],
            "properties": {
                "state": {"type": "string"},
                "parties": {"type": "string"},
                "result": {"type": "number"},
                "collationOfficer": {"type": "string"},
                "isRigged": {"type": "boolean", "default": false},
                "totalLg": {"type": "number"}
            }
        },
        "RigResultRequest": {
            "type": "object",
            "properties": {
                "result": {"type": "number"}
            }
        },
        "TotalRequest": {
            "type": "object",
            "properties": {
                "parties": {"type": "string"}
            }
        },
        "TotalResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "Rigged": {"type": "boolean"},
                "result": {"type": "number"}
            }
        },
        "ResultEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/ElectionResult"}
            }
        },
        "ResultListEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/ElectionResult"}}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "Error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
