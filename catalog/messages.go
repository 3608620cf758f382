package catalog

import (
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/val"
)

// DefaultLanguage is the language used when the client asks for an unknown one.
const DefaultLanguage = "en"

// Messages returns the client facing messages of the catalog error codes, per language.
func Messages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			CodeProductNotFound:      "Product not found",
			CodeProductAlreadyExists: "Product already exists",
			CodeProductCodeTaken:     "Another product already uses this code",
			val.CodeValidationFailed: "Request validation failed",
			"INVALID_JSON_BODY":      "Request body is not valid JSON",
			"INVALID_CONTENT_TYPE":   "Content type must be application/json",
			"INVALID_PATH_PARAMS":    "Invalid path parameters",
			"INVALID_QUERY_PARAMS":   "Invalid query parameters",
			"ROUTER_ERROR":           "Route not found or method not allowed",
			server.CodeInternalError: "Something went wrong, please try again later",
		},
		"ru": {
			CodeProductNotFound:      "Товар не найден",
			CodeProductAlreadyExists: "Товар уже существует",
			CodeProductCodeTaken:     "Этот код уже используется другим товаром",
			val.CodeValidationFailed: "Ошибка валидации запроса",
			server.CodeInternalError: "Внутренняя ошибка сервера, попробуйте позже",
		},
		"uz": {
			CodeProductNotFound:      "Mahsulot topilmadi",
			CodeProductAlreadyExists: "Mahsulot allaqachon mavjud",
			CodeProductCodeTaken:     "Bu kod boshqa mahsulotda ishlatilgan",
			val.CodeValidationFailed: "So'rov tekshiruvdan o'tmadi",
			server.CodeInternalError: "Ichki xatolik, keyinroq urinib ko'ring",
		},
	}
}
