// Package naming provides the name transformation used to derive generated
// identifiers from schema operation names.
//
// Operation names in schema documents are joined words ("sendMessage",
// "answerCallbackQuery"); generated code usually declares them as separated,
// lower-case words ("send_message"). The boundary rules are ASCII-based and
// handle acronym runs, so "getHTTPResponse" becomes "get_http_response"
// rather than "get_h_t_t_p_response".
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
