package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Validation failure messages. These are part of the public API contract and
// are asserted verbatim by clients, so they must not be reworded.
const (
	MsgOwnerBlank        = "Incident owner should not be blank"
	MsgOwnerNotInteger   = "Created by should be an Integer"
	MsgTypeBlank         = "Incident type should not be empty"
	MsgTypeUnknown       = "Incident type should either be a 'red-flag' or 'intervention'"
	MsgLocationBlank     = "Location should not be empty"
	MsgLocationTwoCoords = "Two coordinates required"
	MsgLocationNotFloat  = "Coordinates should be floating point values"
	MsgTitleBlank        = "Title cannot be empty"
	MsgTitleSpecialChars = "Title cannot contain special characters"
	MsgCommentBlank      = "Comments cannot be empty"
	MsgCommentSpecial    = "Comments cannot contain special characters"
	MsgEmailBlank        = "Email should not be blank"
	MsgEmailInvalid      = "Invalid Email Address"
	MsgPasswordBlank     = "Password should not be blank"
	MsgPasswordShort     = "Password should be atleast eight characters"
	MsgPasswordMismatch  = "Passwords should match"
	MsgEmailTaken        = "That email is already taken"
)

// Accumulator collects validation failure messages in the order the rules
// ran. Each entity owns one accumulator per validation attempt; the rule set
// itself is stateless.
type Accumulator struct {
	msgs ValidationErrors
}

// Add appends one failure message.
func (a *Accumulator) Add(msg string) {
	a.msgs = append(a.msgs, msg)
}

// Failed reports whether any rule has failed so far.
func (a *Accumulator) Failed() bool {
	return len(a.msgs) > 0
}

// Messages returns the collected messages in insertion order.
func (a *Accumulator) Messages() []string {
	return a.msgs
}

// Err returns the collected messages as a ValidationErrors, or nil if every
// rule passed.
func (a *Accumulator) Err() error {
	if len(a.msgs) == 0 {
		return nil
	}
	return a.msgs
}

// Rules is the stateless field validation rule set. Each rule checks one raw
// field value, appends exactly one message to the accumulator on failure and
// never panics on malformed input. All rules report pass/fail through their
// boolean return as well, so single fields can be checked in isolation.
type Rules struct{}

// Creator passes when the owner field is non-blank and parses as an integer.
func (Rules) Creator(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgOwnerBlank)
		return false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
		acc.Add(MsgOwnerNotInteger)
		return false
	}
	return true
}

// IncidentType passes when the value is one of the known report kinds.
func (Rules) IncidentType(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgTypeBlank)
		return false
	}
	if !ReportKind(v).Valid() {
		acc.Add(MsgTypeUnknown)
		return false
	}
	return true
}

// Location passes when the value splits on a comma into exactly two tokens
// that both parse as floating point numbers. The canonical location stays a
// verbatim string; this rule only classifies it.
func (Rules) Location(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgLocationBlank)
		return false
	}
	coords := strings.Split(v, ",")
	if len(coords) != 2 {
		acc.Add(MsgLocationTwoCoords)
		return false
	}
	for _, c := range coords {
		if _, err := strconv.ParseFloat(strings.TrimSpace(c), 64); err != nil {
			acc.Add(MsgLocationNotFloat)
			return false
		}
	}
	return true
}

// Title passes when the value is non-blank and free of special characters.
func (Rules) Title(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgTitleBlank)
		return false
	}
	if hasSpecialCharacters(v) {
		acc.Add(MsgTitleSpecialChars)
		return false
	}
	return true
}

// Comment passes when the value is non-blank and free of special characters.
func (Rules) Comment(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgCommentBlank)
		return false
	}
	if hasSpecialCharacters(v) {
		acc.Add(MsgCommentSpecial)
		return false
	}
	return true
}

// Email passes when the value is non-blank and shaped like local@domain.tld.
func (Rules) Email(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgEmailBlank)
		return false
	}
	if !emailRegex.MatchString(strings.TrimSpace(v)) {
		acc.Add(MsgEmailInvalid)
		return false
	}
	return true
}

// Password passes when the value is non-blank and at least eight characters.
func (Rules) Password(v string, acc *Accumulator) bool {
	if isBlank(v) {
		acc.Add(MsgPasswordBlank)
		return false
	}
	if len(v) < 8 {
		acc.Add(MsgPasswordShort)
		return false
	}
	return true
}

// PasswordMatch passes when both password values are equal.
func (Rules) PasswordMatch(password, confirm string, acc *Accumulator) bool {
	if password != confirm {
		acc.Add(MsgPasswordMismatch)
		return false
	}
	return true
}

var (
	emailRegex       = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)
	specialCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_ ]`)
)

// isBlank reports whether the value is empty or all whitespace.
func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}

// hasSpecialCharacters reports whether the value contains anything outside
// letters, digits, spaces and underscores.
func hasSpecialCharacters(v string) bool {
	return specialCharRegex.MatchString(v)
}
