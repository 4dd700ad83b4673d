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
    "paths": {
        "/session": {
            "get": {"tags": ["session"], "summary": "Active course", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.SessionResponse"}}}},
            "put": {"tags": ["session"], "summary": "Set the course name", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/attendance.SessionRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/attendance.errorDTO"}}}}
        },
        "/form": {
            "get": {"tags": ["form"], "summary": "Entry form state", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.FormResponse"}}}},
            "put": {"tags": ["form"], "summary": "Replace the form fields", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/attendance.FormRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.FormResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/attendance.errorDTO"}}}}
        },
        "/form/submit": {
            "post": {"tags": ["form"], "summary": "Save the attendee", "produces": ["application/json"],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/attendance.RecordResponse"}},
                    "204": {"description": "no active course"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/attendance.errorDTO"}}}}
        },
        "/form/reset": {
            "post": {"tags": ["form"], "summary": "Clear the form and the signature", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.FormResponse"}}}}
        },
        "/pad/events": {
            "post": {"tags": ["pad"], "summary": "Deliver pointer and touch events to the signature pad", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/attendance.PadEventsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.PadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/attendance.errorDTO"}}}}
        },
        "/pad": {
            "get": {"tags": ["pad"], "summary": "Signature pad state", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.PadResponse"}}}}
        },
        "/pad/image": {
            "get": {"tags": ["pad"], "summary": "Current signature as PNG", "produces": ["image/png"],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "204": {"description": "pad is empty"}}}
        },
        "/pad/clear": {
            "post": {"tags": ["pad"], "summary": "Erase the signature", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.PadResponse"}}}}
        },
        "/records": {
            "get": {"tags": ["records"], "summary": "Saved records, newest first", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.RosterResponse"}}}}
        },
        "/export": {
            "get": {"tags": ["records"], "summary": "Download the attendance sheet", "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}},
                    "204": {"description": "no course name or no records"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/attendance.errorDTO"}}}}
        }
    },
    "definitions": {
        "attendance.SessionRequest": {"type": "object", "properties": {"course_name": {"type": "string"}}},
        "attendance.SessionResponse": {"type": "object", "properties": {"course_name": {"type": "string"}, "active": {"type": "boolean"}}},
        "attendance.FormRequest": {"type": "object", "properties": {
            "training_date": {"type": "string"}, "participant_name": {"type": "string"},
            "participant_position": {"type": "string"}, "participant_empresa": {"type": "string"}}},
        "attendance.PadResponse": {"type": "object", "properties": {
            "empty": {"type": "boolean"}, "drawing": {"type": "boolean"}, "width": {"type": "integer"}, "height": {"type": "integer"}}},
        "attendance.FormResponse": {"type": "object", "properties": {
            "fields": {"$ref": "#/definitions/attendance.FormRequest"}, "disabled": {"type": "boolean"},
            "error": {"type": "string"}, "pad": {"$ref": "#/definitions/attendance.PadResponse"}}},
        "signature.Point": {"type": "object", "properties": {"x": {"type": "number"}, "y": {"type": "number"}}},
        "signature.Rect": {"type": "object", "properties": {
            "left": {"type": "number"}, "top": {"type": "number"}, "width": {"type": "number"}, "height": {"type": "number"}}},
        "signature.Event": {"type": "object", "required": ["type"], "properties": {
            "type": {"type": "string", "enum": ["mousedown", "mousemove", "mouseup", "mouseleave", "touchstart", "touchmove", "touchend", "resize"]},
            "client_x": {"type": "number"}, "client_y": {"type": "number"},
            "touches": {"type": "array", "items": {"$ref": "#/definitions/signature.Point"}},
            "rect": {"$ref": "#/definitions/signature.Rect"}}},
        "attendance.PadEventsRequest": {"type": "object", "required": ["events"], "properties": {
            "events": {"type": "array", "items": {"$ref": "#/definitions/signature.Event"}}}},
        "attendance.RecordResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "course_name": {"type": "string"}, "training_date": {"type": "string"},
            "participant_name": {"type": "string"}, "participant_position": {"type": "string"},
            "participant_empresa": {"type": "string"}, "signature": {"type": "string"}, "created_at": {"type": "string"}}},
        "attendance.RowView": {"type": "object", "properties": {
            "id": {"type": "string"}, "course_name": {"type": "string"}, "participant_name": {"type": "string"},
            "detail": {"type": "string"}, "training_date": {"type": "string"}, "thumbnail": {"type": "string"}}},
        "attendance.RosterResponse": {"type": "object", "properties": {
            "rows": {"type": "array", "items": {"$ref": "#/definitions/attendance.RowView"}},
            "total": {"type": "integer"}, "export_enabled": {"type": "boolean"}, "empty_message": {"type": "string"}}},
        "attendance.errorDTO": {"type": "object", "properties": {"error": {"type": "object", "properties": {
            "code": {"type": "string"}, "message": {"type": "string"}, "field": {"type": "string"}}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Registro de Asistencia API",
	Description:      "Attendance sheet with signature capture and PDF export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
