// Package docs регистрирует swagger-описание API для /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/token/login/": {
            "post": {
                "tags": ["Auth"],
                "summary": "Получить токен",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.Credentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/login.Response"}},
                    "400": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ValidationResponse"}}
                }
            }
        },
        "/auth/token/logout/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Отозвать токен",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users/": {
            "get": {
                "tags": ["Users"],
                "summary": "Список пользователей",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "count, next, previous, results"}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Регистрация пользователя",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.Registration"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RegisteredUser"}},
                    "400": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ValidationResponse"}}
                }
            }
        },
        "/users/me/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Профиль текущего пользователя",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserProfile"}}}
            }
        },
        "/users/{id}/": {
            "get": {
                "tags": ["Users"],
                "summary": "Профиль пользователя",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserProfile"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/subscribe/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Подписаться на автора",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "recipes_limit", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AuthorSubscription"}},
                    "400": {"description": "Подписка уже есть", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Отписаться от автора",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users/subscriptions/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Мои подписки",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "recipes_limit", "in": "query"}
                ],
                "responses": {"200": {"description": "count, next, previous, results"}}
            }
        },
        "/users/set_password/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Сменить пароль",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.PasswordChange"}}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/recipes/": {
            "get": {
                "tags": ["Recipes"],
                "summary": "Список рецептов",
                "parameters": [
                    {"type": "integer", "name": "author", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "tags", "in": "query"},
                    {"type": "boolean", "name": "is_favorited", "in": "query"},
                    {"type": "boolean", "name": "is_in_shopping_cart", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "count, next, previous, results"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Создать рецепт",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.RecipeInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RecipeFull"}},
                    "400": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ValidationResponse"}}
                }
            }
        },
        "/recipes/{id}/": {
            "get": {
                "tags": ["Recipes"],
                "summary": "Получить рецепт",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecipeFull"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Изменить рецепт",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.RecipeInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecipeFull"}},
                    "403": {"description": "Рецепт принадлежит другому пользователю", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Удалить рецепт",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/recipes/{id}/favorite/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Добавить рецепт в избранное",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RecipeShort"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Убрать рецепт из избранного",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/recipes/{id}/shopping_cart/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Добавить рецепт в корзину",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RecipeShort"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Убрать рецепт из корзины",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/recipes/download_shopping_cart/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["Recipes"],
                "summary": "Скачать список покупок",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/tags/": {
            "get": {
                "tags": ["Tags"],
                "summary": "Список тегов",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Tag"}}}}
            }
        },
        "/tags/{id}/": {
            "get": {
                "tags": ["Tags"],
                "summary": "Получить тег",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Tag"}}}
            }
        },
        "/ingredients/": {
            "get": {
                "tags": ["Ingredients"],
                "summary": "Поиск ингредиентов",
                "parameters": [{"type": "string", "name": "name", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Ingredient"}}}}
            }
        },
        "/ingredients/{id}/": {
            "get": {
                "tags": ["Ingredients"],
                "summary": "Получить ингредиент",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Ingredient"}}}
            }
        }
    },
    "definitions": {
        "login.Response": {
            "type": "object",
            "properties": {"auth_token": {"type": "string"}}
        },
        "models.Credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.Registration": {
            "type": "object",
            "required": ["email", "first_name", "last_name", "password", "username"],
            "properties": {
                "email": {"type": "string", "maxLength": 254},
                "username": {"type": "string", "maxLength": 150},
                "first_name": {"type": "string", "maxLength": 150},
                "last_name": {"type": "string", "maxLength": 150},
                "password": {"type": "string", "minLength": 8, "maxLength": 150}
            }
        },
        "models.RegisteredUser": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "models.PasswordChange": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {"new_password": {"type": "string", "minLength": 8}, "current_password": {"type": "string"}}
        },
        "models.UserProfile": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "is_subscribed": {"type": "boolean"}
            }
        },
        "models.AuthorSubscription": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "is_subscribed": {"type": "boolean"},
                "recipes": {"type": "array", "items": {"$ref": "#/definitions/models.RecipeShort"}},
                "recipes_count": {"type": "integer"}
            }
        },
        "models.Tag": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "color": {"type": "string"}, "slug": {"type": "string"}}
        },
        "models.Ingredient": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "measurement_unit": {"type": "string"}}
        },
        "models.IngredientAmount": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "amount": {"type": "integer", "minimum": 1, "maximum": 32000}}
        },
        "models.RecipeInput": {
            "type": "object",
            "required": ["image", "ingredients", "name", "tags", "text"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "text": {"type": "string"},
                "image": {"type": "string", "description": "data:image/<ext>;base64,<data>"},
                "cooking_time": {"type": "integer", "minimum": 1, "maximum": 1440},
                "tags": {"type": "array", "items": {"type": "integer"}},
                "ingredients": {"type": "array", "items": {"$ref": "#/definitions/models.IngredientAmount"}}
            }
        },
        "models.RecipeShort": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "image": {"type": "string"}, "cooking_time": {"type": "integer"}}
        },
        "models.RecipeFull": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/models.Tag"}},
                "author": {"$ref": "#/definitions/models.UserProfile"},
                "ingredients": {"type": "array", "items": {"type": "object"}},
                "is_favorited": {"type": "boolean"},
                "is_in_shopping_cart": {"type": "boolean"},
                "name": {"type": "string"},
                "image": {"type": "string"},
                "text": {"type": "string"},
                "cooking_time": {"type": "integer"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {"errors": {"type": "string", "example": "recipe is already in favorites"}}
        },
        "response.ValidationResponse": {
            "type": "object",
            "properties": {"errors": {"type": "array", "items": {"type": "string"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Token\" or \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo содержит экспортируемую информацию swagger, чтобы клиенты могли её изменить.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Foodgram API",
	Description:      "API сервиса рецептов: рецепты, избранное, корзина покупок и подписки на авторов",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
