package model

import (
	"strings"
	"unicode"
)

type runeClass int

const (
	classSeparator runeClass = iota
	classLower
	classUpper
	classDigit
	classOther
)

func classify(r rune) runeClass {
	switch {
	case r == '_' || r == '-' || unicode.IsSpace(r):
		return classSeparator
	case unicode.IsLower(r):
		return classLower
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsDigit(r):
		return classDigit
	}
	return classOther
}

// startsWord reports whether a rune of class next opens a new word after a
// rune of class prev: "birthDate" breaks before D, "address2" before 2.
func startsWord(prev, next runeClass) bool {
	letter := func(c runeClass) bool { return c == classLower || c == classUpper }
	switch {
	case prev == classLower && next == classUpper:
		return true
	case letter(prev) && next == classDigit:
		return true
	case prev == classDigit && letter(next):
		return true
	}
	return false
}

// LabelFromName derives the label used for a field declared without one.
// Both "birth_date" and "birthDate" become "Birth Date".
func LabelFromName(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, capitalize(current))
			current = current[:0]
		}
	}

	prev := classSeparator
	for _, r := range name {
		class := classify(r)
		if class == classSeparator {
			flush()
		} else {
			if startsWord(prev, class) {
				flush()
			}
			current = append(current, r)
		}
		prev = class
	}
	flush()
	return strings.Join(words, " ")
}

func capitalize(word []rune) string {
	out := make([]rune, len(word))
	for i, r := range word {
		if i == 0 {
			out[i] = unicode.ToUpper(r)
		} else {
			out[i] = unicode.ToLower(r)
		}
	}
	return string(out)
}
