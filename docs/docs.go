// Package docs holds the OpenAPI spec served under /swagger/.
// Regenerate with: swag init -g cmd/main.go
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход организатора",
                "parameters": [
                    {"description": "Пароль организатора", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Неверный пароль", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Аутентификация не настроена", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments": {
            "get": {
                "description": "Upcoming и Active по дате начала, затем Completed (последние сверху), затем Cancelled.",
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Список турниров",
                "parameters": [
                    {"type": "string", "description": "Upcoming, Active, Completed или Cancelled", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Tournament"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Создать турнир",
                "parameters": [
                    {"description": "Данные турнира", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Tournament"}},
                    "400": {"description": "Ошибка валидации", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/describe": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Сгенерировать описание турнира",
                "parameters": [
                    {"description": "Параметры турнира", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.DescribeTournamentInput"}}
                ],
                "responses": {
                    "200": {"description": "description", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Генератор недоступен", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/{tournamentId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Получить турнир по ID",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Tournament"}},
                    "404": {"description": "Турнир не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Обновить турнир",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true},
                    {"description": "Изменяемые поля", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateTournamentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Tournament"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tournaments"],
                "summary": "Удалить турнир вместе с регистрациями и таблицей результатов",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true}],
                "responses": {"204": {"description": "Удалено"}}
            }
        },
        "/registrations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Зарегистрировать игрока на турнир",
                "parameters": [
                    {"description": "Данные игрока", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateRegistrationInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.PlayerRegistration"}},
                    "429": {"description": "Слишком много запросов", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/registrations/by-tournament/{tournamentId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Регистрации турнира",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerRegistration"}}}
                }
            }
        },
        "/registrations/{registrationId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Обновить регистрацию",
                "parameters": [
                    {"type": "string", "description": "Registration ID", "name": "registrationId", "in": "path", "required": true},
                    {"description": "Изменяемые поля", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateRegistrationInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PlayerRegistration"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["registrations"],
                "summary": "Удалить регистрацию",
                "parameters": [{"type": "string", "description": "Registration ID", "name": "registrationId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/blog/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blog"],
                "summary": "Посты блога, новые сверху",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.BlogPost"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blog"],
                "summary": "Опубликовать пост",
                "parameters": [
                    {"description": "Пост; tags массивом или строкой через запятую", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateBlogPostInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.BlogPost"}},
                    "409": {"description": "Slug занят", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/blog/posts/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blog"],
                "summary": "Пост по slug",
                "parameters": [{"type": "string", "description": "Slug", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BlogPost"}}}
            }
        },
        "/results/{tournamentId}": {
            "get": {
                "description": "Пустая таблица, если результатов ещё нет.",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Таблица результатов турнира",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TournamentResult"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Суммы пересчитываются. Игроки и число раундов должны совпадать с турниром. Ненулевая version делает запись условной.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Заменить таблицу результатов",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true},
                    {"description": "Таблица результатов", "name": "result", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TournamentResult"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TournamentResult"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/results/{tournamentId}/reconcile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Синхронизировать таблицу с составом участников",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TournamentResult"}}}
            }
        },
        "/results/{tournamentId}/players/{playerId}/rounds/{round}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Body {\"score\": 1 | 0.5 | 0 | null}; раунды считаются с 0.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Записать результат одного раунда",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true},
                    {"type": "string", "description": "Registration ID", "name": "playerId", "in": "path", "required": true},
                    {"type": "integer", "description": "Номер раунда с 0", "name": "round", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TournamentResult"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/results/{tournamentId}/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Турнирная таблица по местам",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true},
                    {"type": "string", "description": "name или rating", "name": "tiebreak", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Standing"}}}}
            }
        },
        "/results/{tournamentId}/standings.xlsx": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["results"],
                "summary": "Турнирная таблица в формате Excel",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentId", "in": "path", "required": true},
                    {"type": "string", "description": "name или rating", "name": "tiebreak", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Загрузить изображение",
                "parameters": [{"type": "file", "description": "Файл", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "success, url", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Файл не передан", "schema": {"type": "object", "additionalProperties": true}},
                    "413": {"description": "Файл слишком большой", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "models.Tournament": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "location": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "entryFee": {"type": "number"},
                "prizeFund": {"type": "number"},
                "timeControl": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"},
                "totalRounds": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.PlayerRegistration": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tournamentId": {"type": "string"},
                "tournamentName": {"type": "string"},
                "playerName": {"type": "string"},
                "playerEmail": {"type": "string"},
                "registrationDate": {"type": "string"},
                "feePaid": {"type": "boolean"},
                "gender": {"type": "string"},
                "dob": {"type": "string"},
                "organization": {"type": "string"},
                "mobile": {"type": "string"},
                "fideRating": {"type": "number"},
                "fideId": {"type": "string"},
                "paymentScreenshotUrl": {"type": "string"}
            }
        },
        "models.BlogPost": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "imageUrl": {"type": "string"},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.PlayerScore": {
            "type": "object",
            "properties": {
                "playerId": {"type": "string"},
                "playerName": {"type": "string"},
                "fideRating": {"type": "number"},
                "roundScores": {"type": "array", "items": {"type": "number", "x-nullable": true}},
                "totalScore": {"type": "number"}
            }
        },
        "models.TournamentResult": {
            "type": "object",
            "properties": {
                "tournamentId": {"type": "string"},
                "playerScores": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerScore"}},
                "version": {"type": "integer"}
            }
        },
        "models.Standing": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "playerId": {"type": "string"},
                "playerName": {"type": "string"},
                "fideRating": {"type": "number"},
                "roundScores": {"type": "array", "items": {"type": "number", "x-nullable": true}},
                "totalScore": {"type": "number"}
            }
        },
        "services.LoginInput": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "services.CreateTournamentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "location": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "entryFee": {"type": "number"},
                "prizeFund": {"type": "number"},
                "timeControl": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"},
                "totalRounds": {"type": "integer"},
                "imageUrl": {"type": "string"}
            }
        },
        "services.UpdateTournamentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "location": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "entryFee": {"type": "number"},
                "prizeFund": {"type": "number"},
                "timeControl": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"},
                "totalRounds": {"type": "integer"},
                "imageUrl": {"type": "string"}
            }
        },
        "services.DescribeTournamentInput": {
            "type": "object",
            "properties": {
                "tournamentName": {"type": "string"},
                "tournamentType": {"type": "string"},
                "tournamentLocation": {"type": "string"},
                "tournamentStartDate": {"type": "string"},
                "tournamentEndDate": {"type": "string"},
                "entryFee": {"type": "number"},
                "prizeFund": {"type": "number"},
                "timeControl": {"type": "string"}
            }
        },
        "services.CreateRegistrationInput": {
            "type": "object",
            "properties": {
                "tournamentId": {"type": "string"},
                "playerName": {"type": "string"},
                "playerEmail": {"type": "string"},
                "feePaid": {"type": "boolean"},
                "gender": {"type": "string"},
                "dob": {"type": "string"},
                "organization": {"type": "string"},
                "mobile": {"type": "string"},
                "fideRating": {"type": "number"},
                "fideId": {"type": "string"},
                "paymentScreenshotUrl": {"type": "string"}
            }
        },
        "services.UpdateRegistrationInput": {
            "type": "object",
            "properties": {
                "playerName": {"type": "string"},
                "playerEmail": {"type": "string"},
                "feePaid": {"type": "boolean"},
                "gender": {"type": "string"},
                "dob": {"type": "string"},
                "organization": {"type": "string"},
                "mobile": {"type": "string"},
                "fideRating": {"type": "number"},
                "fideId": {"type": "string"},
                "paymentScreenshotUrl": {"type": "string"}
            }
        },
        "services.CreateBlogPostInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "imageUrl": {"type": "string"},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "content": {"type": "string"}
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Chessmate Central API",
	Description:      "Chess tournaments, registrations, score tables and standings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
