// Package core provides the record materialization and validation pipeline.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code for
// faster diagnosis.
//
// # Configuration Errors (CFG001-CFG099)
//
// Errors in the record schema, detected before any row is processed:
//
//	CFG001 - Column collision: two fields declare the same column position
//	         Action: Review the record definition's column assignments
//	         Patterns: "assigned to both"
//
//	CFG002 - Duplicate field: the same field name is declared twice
//	         Action: Rename one of the duplicate fields
//	         Patterns: "duplicate field name"
//
//	CFG003 - Unsupported type: a field's declared type has no built-in
//	         conversion and no custom parse strategy
//	         Action: Declare a custom parse strategy for the field
//	         Patterns: "unsupported field type"
//
// # Validation Errors (VAL001-VAL099)
//
// Errors attached to individual cells or rows during streaming:
//
//	VAL001 - Invalid date: Invalid date format detected
//	         Action: Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024
//	         Patterns: "invalid date"
//
//	VAL002 - Invalid number: Invalid number format detected
//	         Action: Remove currency symbols and use standard decimal format
//	         Patterns: "invalid number"
//
//	VAL003 - Required value: a required cell is empty
//	         Action: Ensure all required columns have values
//	         Patterns: "value is required"
//
//	VAL004 - Invalid bool: value is not a recognized true/false spelling
//	         Action: Use true/false, yes/no, or 1/0
//	         Patterns: "invalid bool"
//
//	VAL005 - Invalid identifier: value is not a valid GUID
//	         Action: Check the identifier for typos
//	         Patterns: "invalid uuid"
//
//	VAL006 - Rule failure: a business rule raised an internal error
//	         Action: Review the rule and the row it failed on
//	         Patterns: "row validator failed"
//
// # File Errors (FILE001-FILE099)
//
// Errors opening or reading the tabular source:
//
//	FILE001 - Empty workbook: the file contains no sheets
//	          Action: Upload a workbook with at least one sheet
//	          Patterns: "no sheets"
//
//	FILE002 - Empty file: the file has no data rows
//	          Action: Upload a file with data rows
//	          Patterns: "empty file"
//
//	FILE003 - Unreadable file: the file could not be parsed
//	          Action: Ensure the file is a valid .xlsx or .csv
//	          Patterns: "not a valid", "failed to open"
//
//	FILE004 - Source closed: the source was read after being released
//	          Action: Open a fresh source; a run is single-pass
//	          Patterns: "source closed"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check application logs for the
// original technical error when users report ERR000.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns are listed before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. First match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// Configuration errors (CFG001-CFG003)
	{
		pattern: "assigned to both",
		msg: UserMessage{
			Message: "Two fields are mapped to the same column",
			Action:  "Review the record definition's column assignments",
			Code:    "CFG001",
		},
	},
	{
		pattern: "duplicate field name",
		msg: UserMessage{
			Message: "The same field name is declared twice",
			Action:  "Rename one of the duplicate fields",
			Code:    "CFG002",
		},
	},
	{
		pattern: "unsupported field type",
		msg: UserMessage{
			Message: "A field's type has no built-in conversion",
			Action:  "Declare a custom parse strategy for the field",
			Code:    "CFG003",
		},
	},

	// Validation errors (VAL001-VAL006)
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove currency symbols and use standard decimal format",
			Code:    "VAL002",
		},
	},
	{
		pattern: "value is required",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Ensure all required columns have values",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid bool",
		msg: UserMessage{
			Message: "Value is not a recognized true/false spelling",
			Action:  "Use true/false, yes/no, or 1/0",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid uuid",
		msg: UserMessage{
			Message: "Value is not a valid identifier",
			Action:  "Check the identifier for typos",
			Code:    "VAL005",
		},
	},
	{
		pattern: "row validator failed",
		msg: UserMessage{
			Message: "A business rule raised an internal error",
			Action:  "Review the rule and the row it failed on",
			Code:    "VAL006",
		},
	},

	// File errors (FILE001-FILE004)
	{
		pattern: "no sheets",
		msg: UserMessage{
			Message: "The workbook contains no sheets",
			Action:  "Upload a workbook with at least one sheet",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Upload a file with data rows",
			Code:    "FILE002",
		},
	},
	{
		pattern: "not a valid",
		msg: UserMessage{
			Message: "The file could not be parsed",
			Action:  "Ensure the file is a valid .xlsx or .csv",
			Code:    "FILE003",
		},
	},
	{
		pattern: "failed to open",
		msg: UserMessage{
			Message: "The file could not be opened",
			Action:  "Check the file path and permissions",
			Code:    "FILE003",
		},
	},
	{
		pattern: "source closed",
		msg: UserMessage{
			Message: "The source was read after being released",
			Action:  "Open a fresh source; a run is single-pass",
			Code:    "FILE004",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. It
// searches the known patterns (case-insensitive) and returns the first
// match, or the generic ERR000 fallback.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern and should
// be shown to users as-is, rather than logged as a technical fault.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
