// Package accessor is the typed get/set surface over an engine session.
//
// Every variable is marshaled according to its classified kind:
//
//	BOOL   true ⇔ raw == 1.0 exactly; written as 1.0 / 0.0
//	INT    whole float64, truncated on read
//	FLOAT  passed through
//	ENUM   ordinal in the bound domain, truncated on read
//
// Names are checked against the variable registry before the session is
// touched, so an unknown name never reaches the engine.
package accessor
