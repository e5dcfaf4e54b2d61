package response

import "net/http"

// ErrorBody is the single failure shape of the API.
type ErrorBody struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
	Msg   string `json:"msg"`
}

// Error builds the body for kind; an empty customMsg keeps the default text.
func Error(kind, customMsg string) ErrorBody {
	msg := KindMsgMap[kind]
	if customMsg != "" {
		msg = customMsg
	}
	return ErrorBody{Code: Status(kind), Error: kind, Msg: msg}
}

// Status returns the HTTP status for kind, 500 for unknown kinds.
func Status(kind string) int {
	if s, ok := KindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}
