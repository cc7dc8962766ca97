package dto

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ListErrorResponse - ошибка чтения списка: клиент показывает баннер
// и пустую таблицу.
type ListErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Data  []any  `json:"data"`
}

// ListResponse - список с количеством строк.
type ListResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// DataResponse - одиночный объект.
type DataResponse struct {
	Data any `json:"data"`
}

// CountResponse - ответ счётчика.
type CountResponse struct {
	Count int `json:"count"`
}
