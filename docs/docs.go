package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "GWW Voice Agent Dashboard",
    "description": "Read-only JSON snapshots of the dashboard views",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/api/dashboard": {"get": {"tags": ["views"], "summary": "Dashboard analytics", "produces": ["application/json"], "parameters": [{"name": "refresh", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
    "/api/status": {"get": {"tags": ["views"], "summary": "Backend status", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
    "/api/sessions": {"get": {"tags": ["views"], "summary": "Active sessions", "produces": ["application/json"], "parameters": [{"name": "refresh", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
    "/api/users": {"get": {"tags": ["views"], "summary": "Users", "produces": ["application/json"], "parameters": [{"name": "refresh", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
    "/api/users/lookup": {"get": {"tags": ["views"], "summary": "Find one user", "produces": ["application/json"], "parameters": [{"name": "by", "in": "query", "type": "string", "required": true}, {"name": "q", "in": "query", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
    "/api/conversations": {"get": {"tags": ["views"], "summary": "Conversations", "produces": ["application/json"], "parameters": [{"name": "refresh", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
    "/api/conversations/{id}": {"get": {"tags": ["views"], "summary": "Conversation transcript", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
    "/api/logs": {"get": {"tags": ["views"], "summary": "Backend log tail", "produces": ["application/json"], "parameters": [{"name": "refresh", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}}
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
