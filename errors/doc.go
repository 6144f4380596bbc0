// Package errors is the API's error type. An AppError maps to an HTTP
// status through its code and is rendered as {"error": "<message>"}.
package errors
