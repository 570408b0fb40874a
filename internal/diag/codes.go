package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexUnbalancedDelim          Code = 1005
	LexUnclosedDelim            Code = 1006

	// Rewriter
	RwInfo             Code = 2000
	RwExpectMacroRules Code = 2001
	RwExpectBang       Code = 2002
	RwExpectName       Code = 2003
	RwExpectBraceBody  Code = 2004

	// Probing / environment
	PrbInfo            Code = 3000
	PrbMissingFlagsEnv Code = 3001
	PrbNoStdFallback   Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedChar:         "Unterminated char literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnbalancedDelim:          "Unbalanced close delimiter",
	LexUnclosedDelim:            "Unclosed delimiter",
	RwInfo:                      "Rewrite information",
	RwExpectMacroRules:          "Expected a macro_rules! definition",
	RwExpectBang:                "Expected '!' after macro_rules",
	RwExpectName:                "Expected macro name",
	RwExpectBraceBody:           "Expected brace-delimited macro body",
	PrbInfo:                     "Probe information",
	PrbMissingFlagsEnv:          "Missing encoded compiler flags",
	PrbNoStdFallback:            "Probe self-check failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RWR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PRB%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
