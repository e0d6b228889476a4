// Package docs Waste Management API.
//
// Сервис управления вывозом мусора для муниципалитетов.
// Жители оставляют заявки на вывоз, система подбирает ближайшую свободную
// машину, водители ведут заявку до завершения, админы управляют парком
// и учетками своего муниципалитета.
//
// Основные возможности:
// - Регистрация жителей и вход по JWT (access/refresh)
// - Заявки на вывоз с автоматическим подбором ближайшей машины
// - Управление парком машин и водителями муниципалитета
// - Сводки дашборда по ролям с кешированием
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
